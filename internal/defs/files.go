package defs

// Common file and directory names used across the project.
const (
	// RequirementsTxt is the pip requirements file probed in the working
	// directory; when present it takes precedence over the fallback list.
	RequirementsTxt = "requirements.txt"

	// ConfigDir is the per-project configuration directory.
	ConfigDir = ".ocrsetup"

	// ConfigYAML is the configuration file inside ConfigDir.
	ConfigYAML = "config.yaml"

	// TraineddataExt is the file extension of tesseract language data.
	TraineddataExt = ".traineddata"
)

// External tool names the provisioner shells out to or verifies.
const (
	AptGet    = "apt-get"
	DpkgQuery = "dpkg-query"
	Sudo      = "sudo"
	Python3   = "python3"
	Pip3      = "pip3"
	Tesseract = "tesseract"
	PdfToText = "pdftotext"
	Magick    = "magick"
	Convert   = "convert"
)
