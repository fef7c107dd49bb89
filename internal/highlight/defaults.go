package highlight

// DefaultLanguages is the built-in grammar table. Lexer names refer to
// chroma's lexer registry.
var DefaultLanguages = []Language{
	{ID: "xml", DisplayName: "XML", Lexer: "xml"},
	{ID: "javascript", DisplayName: "JavaScript", Lexer: "javascript"},
	{ID: "typescript", DisplayName: "TypeScript", Lexer: "typescript"},
	{ID: "python", DisplayName: "Python", Lexer: "python"},
	{ID: "java", DisplayName: "Java", Lexer: "java"},
	{ID: "cpp", DisplayName: "C++", Lexer: "cpp"},
	{ID: "csharp", DisplayName: "C#", Lexer: "csharp"},
	{ID: "php", DisplayName: "PHP", Lexer: "php"},
	{ID: "ruby", DisplayName: "Ruby", Lexer: "ruby"},
	{ID: "go", DisplayName: "Go", Lexer: "go"},
	{ID: "rust", DisplayName: "Rust", Lexer: "rust"},
	{ID: "sql", DisplayName: "SQL", Lexer: "sql"},
	{ID: "shell", DisplayName: "Shell", Lexer: "bash"},
	{ID: "json", DisplayName: "JSON", Lexer: "json"},
	{ID: "yaml", DisplayName: "YAML", Lexer: "yaml"},
	{ID: "css", DisplayName: "CSS", Lexer: "css"},
	{ID: "scss", DisplayName: "SCSS", Lexer: "scss"},
	{ID: "less", DisplayName: "Less", Lexer: "less"},
	{ID: "markdown", DisplayName: "Markdown", Lexer: "markdown"},
	{ID: "swift", DisplayName: "Swift", Lexer: "swift"},
	{ID: "kotlin", DisplayName: "Kotlin", Lexer: "kotlin"},
	{ID: "scala", DisplayName: "Scala", Lexer: "scala"},
}

// DefaultAliases maps alternate spellings to canonical ids.
var DefaultAliases = map[string]string{
	"vue":    "xml",
	"html":   "xml",
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"c++":    "cpp",
	"cs":     "csharp",
	"rb":     "ruby",
	"golang": "go",
	"rs":     "rust",
	"bash":   "shell",
	"sh":     "shell",
	"yml":    "yaml",
	"md":     "markdown",
}

// NewDefaultRegistry returns an unfrozen registry seeded with
// DefaultLanguages and DefaultAliases.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, lang := range DefaultLanguages {
		// The built-in table has no duplicates.
		_ = r.RegisterLanguage(lang)
	}
	for alias, id := range DefaultAliases {
		_ = r.RegisterAlias(alias, id)
	}
	return r
}
