package layeredroot

import (
	"reflect"
	"testing"
)

func TestZeroValuesAreDefaults(t *testing.T) {
	var sc ScopeConfig
	if sc.Declared() {
		t.Error("zero ScopeConfig should report nothing declared")
	}

	var ec EffectiveConfig
	if ec.Enabled {
		t.Error("zero EffectiveConfig should be disabled")
	}
	if len(ec.Layers) != 0 {
		t.Errorf("zero EffectiveConfig should have no layers, got %v", ec.Layers)
	}
}

func TestScopeConfigAccumulates(t *testing.T) {
	var sc ScopeConfig
	sc.AddLayers("layered/xmas")
	sc.AddLayers("layered/promo", "layered/sale")
	sc.AddLayers("layered/xmas") // duplicates are allowed

	want := []string{"layered/xmas", "layered/promo", "layered/sale", "layered/xmas"}
	if !reflect.DeepEqual(sc.Layers, want) {
		t.Errorf("Layers = %v, want %v", sc.Layers, want)
	}
}

func TestMergeInheritsUndeclaredFields(t *testing.T) {
	parent := EffectiveConfig{Enabled: true, Layers: []string{"a", "b"}}

	got := Merge(parent, ScopeConfig{})
	if !got.Enabled {
		t.Error("undeclared Enabled should inherit parent's true")
	}
	if !reflect.DeepEqual(got.Layers, []string{"a", "b"}) {
		t.Errorf("undeclared Layers should inherit parent's, got %v", got.Layers)
	}
}

func TestMergeReplacesLayerList(t *testing.T) {
	parent := EffectiveConfig{Enabled: true, Layers: []string{"a", "b"}}

	var child ScopeConfig
	child.AddLayers("c")

	got := Merge(parent, child)
	// Full replacement, not concatenation: a single-entry child list
	// discards the parent's list.
	if !reflect.DeepEqual(got.Layers, []string{"c"}) {
		t.Errorf("Layers = %v, want [c]", got.Layers)
	}
	if !got.Enabled {
		t.Error("Enabled should still be inherited from parent")
	}
}

func TestMergeOverridesEnabled(t *testing.T) {
	parent := EffectiveConfig{Enabled: true, Layers: []string{"a"}}

	var child ScopeConfig
	child.SetEnabled(false)

	got := Merge(parent, child)
	if got.Enabled {
		t.Error("explicit Off in child should override parent's On")
	}
	if !reflect.DeepEqual(got.Layers, []string{"a"}) {
		t.Errorf("Layers should be inherited, got %v", got.Layers)
	}
}

func TestMergeChainOutermostToInnermost(t *testing.T) {
	var server ScopeConfig
	server.SetEnabled(true)
	server.AddLayers("global")

	var vhost ScopeConfig
	vhost.AddLayers("season", "promo")

	var location ScopeConfig
	location.SetEnabled(false)

	eff := Merge(Merge(Merge(EffectiveConfig{}, server), vhost), location)

	if eff.Enabled {
		t.Error("location's Off should win")
	}
	if !reflect.DeepEqual(eff.Layers, []string{"season", "promo"}) {
		t.Errorf("Layers = %v, want vhost's list", eff.Layers)
	}
}
