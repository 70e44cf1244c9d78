package taxonomy

const (
	ProgrammingLanguages = "Programming Languages"
	WebTechnologies      = "Web Technologies"
	Databases            = "Databases"
	FrameworksLibraries  = "Frameworks & Libraries"
	ToolsPlatforms       = "Tools & Platforms"
)

var builtin = []Category{
	{
		Name: ProgrammingLanguages,
		Skills: []string{
			"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go",
			"rust", "swift", "kotlin", "scala", "r", "matlab", "c", "perl",
		},
	},
	{
		Name: WebTechnologies,
		Skills: []string{
			"html", "css", "react", "angular", "vue", "nextjs", "express", "nodejs",
			"bootstrap", "tailwind", "sass", "jquery", "webpack",
		},
	},
	{
		Name: Databases,
		Skills: []string{
			"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle", "sql server",
			"dynamodb", "elasticsearch",
		},
	},
	{
		Name: FrameworksLibraries,
		Skills: []string{
			"django", "flask", "spring", "spring boot", "laravel", "tensorflow", "pytorch",
			"pandas", "numpy", "scikit-learn", "keras",
		},
	},
	{
		Name: ToolsPlatforms,
		Skills: []string{
			"git", "github", "docker", "kubernetes", "aws", "azure", "linux", "jenkins",
			"postman", "figma", "jira",
		},
	},
}
