package conf

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoConfig = `
Listen 127.0.0.1:8080
ServerName example.com
DocumentRoot /srv/www
EnableDocumentRootLayers On
DocumentRootLayers layered/xmas
DocumentRootLayers layered/promo

<VirtualHost *:8080>
    ServerName shop.example.com
    DocumentRoot /srv/shop
    DocumentRootLayers layered/sale

    <Location /archive>
        EnableDocumentRootLayers Off
    </Location>
</VirtualHost>
`

func loadDemo(t *testing.T) *Site {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/site.conf", []byte(demoConfig), 0644))
	site, err := Load(fsys, "/etc/site.conf")
	require.NoError(t, err)
	return site
}

func TestBuildServerScope(t *testing.T) {
	site := loadDemo(t)

	assert.Equal(t, "127.0.0.1:8080", site.Listen)
	assert.Equal(t, "/srv/www", site.DocumentRoot)
	assert.True(t, site.Effective.Enabled)
	// Two occurrences in one scope accumulate.
	assert.Equal(t, []string{"layered/xmas", "layered/promo"}, site.Effective.Layers)
}

func TestBuildVirtualHostScope(t *testing.T) {
	site := loadDemo(t)
	require.Len(t, site.Hosts, 1)
	vh := site.Hosts[0]

	assert.Equal(t, "shop.example.com", vh.ServerName)
	assert.Equal(t, "/srv/shop", vh.DocumentRoot)
	assert.True(t, vh.Effective.Enabled, "Enabled inherited from server scope")
	// Cross-scope merge replaces the whole list, it does not append.
	assert.Equal(t, []string{"layered/sale"}, vh.Effective.Layers)
}

func TestBuildLocationScope(t *testing.T) {
	site := loadDemo(t)
	vh := site.Hosts[0]
	require.Len(t, vh.Locations, 1)
	loc := vh.Locations[0]

	assert.False(t, loc.Effective.Enabled, "explicit Off wins")
	assert.Equal(t, []string{"layered/sale"}, loc.Effective.Layers, "layers inherited unchanged")
}

func TestScopeLookup(t *testing.T) {
	site := loadDemo(t)

	docRoot, eff := site.Scope("example.com", "/index.html")
	assert.Equal(t, "/srv/www", docRoot)
	assert.Equal(t, []string{"layered/xmas", "layered/promo"}, eff.Layers)

	docRoot, eff = site.Scope("shop.example.com:8080", "/index.html")
	assert.Equal(t, "/srv/shop", docRoot)
	assert.Equal(t, []string{"layered/sale"}, eff.Layers)
	assert.True(t, eff.Enabled)

	_, eff = site.Scope("shop.example.com", "/archive/2024.html")
	assert.False(t, eff.Enabled, "location Off applies under its prefix")

	_, eff = site.Scope("shop.example.com", "/archives.html")
	assert.True(t, eff.Enabled, "prefix match is segment-aware")
}

func TestVirtualHostInheritsServerDocumentRoot(t *testing.T) {
	root := mustParse(t, `
DocumentRoot /srv/www
<VirtualHost *:80>
    ServerName a.example.com
</VirtualHost>
`)
	site, err := Build(root)
	require.NoError(t, err)
	assert.Equal(t, "/srv/www", site.Hosts[0].DocumentRoot)
}

func TestLocationMatchScopes(t *testing.T) {
	root := mustParse(t, `
EnableDocumentRootLayers On
<LocationMatch "\.png$">
    DocumentRootLayers layered/img
</LocationMatch>
`)
	site, err := Build(root)
	require.NoError(t, err)

	_, eff := site.Scope("example.com", "/banner.png")
	assert.Equal(t, []string{"layered/img"}, eff.Layers)

	_, eff = site.Scope("example.com", "/banner.jpg")
	assert.Empty(t, eff.Layers)
}

func TestUnknownDirectivesAreTolerated(t *testing.T) {
	root := mustParse(t, `
DocumentRoot /srv/www
ErrorLog /var/log/site.log
<Directory /srv/www>
    Require all granted
</Directory>
`)
	_, err := Build(root)
	assert.NoError(t, err)
}
