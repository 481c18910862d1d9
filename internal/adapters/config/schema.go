package config

// File is the structure shared by the global config.yaml and the project
// muleboot.yaml. Unset fields leave the lower layer in place.
type File struct {
	// Root is only honored in the global file.
	Root                *string  `yaml:"root"`
	Python              *string  `yaml:"python"`
	EnvDir              *string  `yaml:"envDir"`
	Manifest            *string  `yaml:"manifest"`
	Entrypoint          *string  `yaml:"entrypoint"`
	Launcher            *string  `yaml:"launcher"`
	Tag                 *string  `yaml:"tag"`
	Handoff             *string  `yaml:"handoff"`
	Lock                *bool    `yaml:"lock"`
	Debug               *bool    `yaml:"debug"`
	Log                 *string  `yaml:"log"`
	DefaultRequirements []string `yaml:"defaultRequirements"`
}
