package config

// ProjectFileNames are the recognized project file names, checked in order.
var ProjectFileNames = []string{"vela.yaml", "vela.yml"}

// DeclFileExtensions are all recognized declaration-set file extensions.
var DeclFileExtensions = []string{".yaml", ".yml"}

// MaxNestingDepth caps term and pattern nesting, both when decoding
// declaration files and inside the elaborator walkers.
const MaxNestingDepth = 512
