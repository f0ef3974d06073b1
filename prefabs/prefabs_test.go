package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTuningSpec(t *testing.T) {
	spec, err := LoadTuningSpec()
	require.NoError(t, err)

	assert.Equal(t, 3.0, spec.Combo.WindowSeconds)
	assert.Equal(t, 50, spec.Combo.MultiplierCap)
	assert.Equal(t, 10, spec.Rampage.Threshold)
	assert.Equal(t, 0.3, spec.Rampage.CrowdTimeScale)
	assert.Positive(t, spec.Rampage.HitStopFrames)
	assert.Positive(t, spec.Progression.DisposalFrames)
}

func TestLoadTierTable(t *testing.T) {
	table, err := LoadTierTable("tiers.yaml")
	require.NoError(t, err)
	require.Len(t, table.Tiers, 5)
	assert.Equal(t, "foot", table.Tiers[0].Name)
	assert.Equal(t, 500, table.Tiers[1].Threshold)
}

func TestTierTableValidate(t *testing.T) {
	tests := []struct {
		name  string
		tiers []TierSpec
		ok    bool
	}{
		{name: "empty", tiers: nil},
		{name: "single", tiers: []TierSpec{{Name: "foot", MaxHealth: 10}}, ok: true},
		{name: "increasing", tiers: []TierSpec{{Name: "a", MaxHealth: 1}, {Name: "b", Threshold: 5, MaxHealth: 1}}, ok: true},
		{name: "equal thresholds", tiers: []TierSpec{{Name: "a", Threshold: 5, MaxHealth: 1}, {Name: "b", Threshold: 5, MaxHealth: 1}}},
		{name: "decreasing", tiers: []TierSpec{{Name: "a", Threshold: 9, MaxHealth: 1}, {Name: "b", Threshold: 5, MaxHealth: 1}}},
		{name: "zero health", tiers: []TierSpec{{Name: "a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TierTable{Tiers: tt.tiers}.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTiers)
		})
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	_, err := LoadSpec[TuningSpec]("missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefabs: load missing.yaml")
}

func TestActorPrefabsDecode(t *testing.T) {
	for _, name := range []string{"avatar.yaml", "pedestrian.yaml", "hostile.yaml", "projectile.yaml"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			require.NoError(t, err)
			require.Contains(t, spec.Components, "kind")
			require.Contains(t, spec.Components, "collider")

			collider, err := DecodeComponentSpec[ColliderComponentSpec](spec.Components["collider"])
			require.NoError(t, err)
			assert.Positive(t, collider.Radius)
		})
	}
}

func TestHostileSteeringSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("hostile.yaml")
	require.NoError(t, err)
	steering, err := DecodeComponentSpec[SteeringComponentSpec](spec.Components["steering"])
	require.NoError(t, err)
	assert.Equal(t, "hostile.tengo", steering.Script)
	require.Len(t, steering.Behaviors, 3)
	assert.Equal(t, "seek", steering.Behaviors[0].Kind)
	assert.Equal(t, 0.8, steering.Behaviors[0].Weight)

	script, err := LoadScript(steering.Script)
	require.NoError(t, err)
	assert.Contains(t, string(script), "behaviors")
}

func TestCleanScriptPath(t *testing.T) {
	tests := map[string]string{
		"hostile.tengo":                 "scripts/hostile.tengo",
		"scripts/hostile.tengo":         "scripts/hostile.tengo",
		"prefabs/scripts/hostile.tengo": "scripts/hostile.tengo",
		"":                              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanScriptPath(in), in)
	}
}

func TestIsPrefabFile(t *testing.T) {
	assert.True(t, IsPrefabFile("prefabs/tuning.yaml"))
	assert.True(t, IsPrefabFile("x.YML"))
	assert.True(t, IsPrefabFile("scripts/hostile.tengo"))
	assert.False(t, IsPrefabFile("notes.txt"))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tuning.yaml"), []byte("combo: {}\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "tuning.yaml", name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload event")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
