package extract

// SourceFile is one file handed to the engine by the file source:
// a repository-relative path, a language tag, and already-read content.
type SourceFile struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

// RefForm describes the import syntax a reference was written with.
type RefForm string

const (
	FormStatic   RefForm = "static"
	FormDynamic  RefForm = "dynamic"
	FormReexport RefForm = "reexport"
	FormRequire  RefForm = "require"
	FormInclude  RefForm = "include"
)

// RawReference is a module specifier exactly as written in source,
// together with the 1-based line it appears on.
type RawReference struct {
	Specifier string  `json:"specifier"`
	Line      int     `json:"line"`
	Form      RefForm `json:"form"`
}

// FileRefs pairs a source file with the raw references extracted from it.
type FileRefs struct {
	File SourceFile     `json:"file"`
	Refs []RawReference `json:"refs"`
}
