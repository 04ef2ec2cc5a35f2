package fuzztests

import (
	"testing"

	"tsdoc/internal/config"
)

func FuzzConfigLoad(f *testing.F) {
	addConfigSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		for _, name := range []string{"tsdoc.json", "tsdoc.toml", "tsdoc.yaml"} {
			cfg, err := config.LoadBytes(name, clamp(input), config.LoadOptions{MaxDiagnostics: 64})
			if err != nil {
				t.Fatalf("LoadBytes(%s): %v", name, err)
			}
			if cfg.Registry == nil {
				t.Fatalf("LoadBytes(%s) returned no registry", name)
			}
		}
	})
}
