package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// SettingsFile is looked up at the root of the working tree.
const SettingsFile = "xenia-build.yaml"

type GypSettings struct {
	Include         string `yaml:"include"`
	Depth           string `yaml:"depth"`
	GeneratorOutput string `yaml:"generator_output"`
	Project         string `yaml:"project"`
	MSVSVersion     string `yaml:"msvs_version"`
}

type LLVMSettings struct {
	Generator string   `yaml:"generator"`
	Targets   []string `yaml:"targets"`
}

type BinutilsSettings struct {
	Target string   `yaml:"target"`
	Flags  []string `yaml:"flags"`
}

type XethunkSettings struct {
	// Source is the path without extension; .c, .bc and .ll are derived from it.
	Source string `yaml:"source"`
}

type TestSettings struct {
	FixturesDir string `yaml:"fixtures_dir"`
	Runner      string `yaml:"runner"`
}

type LogSettings struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Settings tunes the tool names and fixed arguments used by the pipelines.
type Settings struct {
	Includes []string         `yaml:"include"`
	Python   string           `yaml:"python"`
	Gyp      GypSettings      `yaml:"gyp"`
	LLVM     LLVMSettings     `yaml:"llvm"`
	Binutils BinutilsSettings `yaml:"binutils"`
	Xethunk  XethunkSettings  `yaml:"xethunk"`
	Test     TestSettings     `yaml:"test"`
	Log      LogSettings      `yaml:"log"`
	NoColor  bool             `yaml:"no_color"`
}

func DefaultSettings() Settings {
	return Settings{
		Python: "python",
		Gyp: GypSettings{
			Include:         "common.gypi",
			Depth:           ".",
			GeneratorOutput: "build/xenia/",
			Project:         "xenia.gyp",
			MSVSVersion:     "2010",
		},
		LLVM: LLVMSettings{
			Generator: "Ninja",
			Targets:   []string{"X86", "PowerPC", "CppBackend"},
		},
		Binutils: BinutilsSettings{
			Target: "powerpc-none-elf",
			Flags: []string{
				"--disable-debug",
				"--disable-dependency-tracking",
				"--disable-werror",
				"--enable-interwork",
				"--enable-multilib",
			},
		},
		Xethunk: XethunkSettings{Source: "src/xenia/cpu/xethunk/xethunk"},
		Test: TestSettings{
			FixturesDir: "test/codegen/",
			Runner:      "bin/xenia-test",
		},
		Log: LogSettings{Level: "warn"},
	}
}

// LoadSettings decodes path over the defaults, then every file listed under
// include in order. A missing main file yields the defaults; a missing include
// is reported as a warning and skipped.
func LoadSettings(fs afero.Fs, path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("decode %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for _, inc := range settings.Includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(base, inc)
		}
		incData, err := afero.ReadFile(fs, inc)
		if err != nil {
			Logger.Warn().Str("include", inc).Err(err).Msg("cannot load settings include")
			continue
		}
		if err := yaml.Unmarshal(incData, &settings); err != nil {
			return settings, fmt.Errorf("decode %s: %w", inc, err)
		}
	}
	return settings, nil
}
