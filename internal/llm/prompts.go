package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/extract_jobs.txt
	extractJobsTemplate string
	//go:embed prompts/cold_email.txt
	coldEmailTemplate string
)

// EmailPromptInput holds the values interpolated into the cold email prompt.
type EmailPromptInput struct {
	JobTitle    string
	Company     string
	Skills      []string
	Experience  string
	Description string
	// PortfolioLinks are rendered one per line as "- <url>".
	PortfolioLinks []string
	Tone           string
	Length         string
}

const noPortfolioLinks = "- No specific portfolio links available"

// ExtractJobsPrompt renders the job extraction prompt for a page's visible text.
func ExtractJobsPrompt(pageText, company string) string {
	replacer := strings.NewReplacer(
		"{{COMPANY}}", company,
		"{{PAGE_TEXT}}", pageText,
	)
	return replacer.Replace(extractJobsTemplate)
}

// ColdEmailPrompt renders the cold email prompt. Tone and Length are optional.
func ColdEmailPrompt(in EmailPromptInput) string {
	length := "150-250 words"
	switch strings.ToLower(strings.TrimSpace(in.Length)) {
	case "short":
		length = "100-150 words"
	case "long":
		length = "250-350 words"
	}

	style := ""
	if tone := strings.TrimSpace(in.Tone); tone != "" {
		style = "9. Tone: " + tone + "\n"
	}

	replacer := strings.NewReplacer(
		"{{COMPANY}}", in.Company,
		"{{JOB_TITLE}}", in.JobTitle,
		"{{SKILLS}}", strings.Join(in.Skills, ", "),
		"{{EXPERIENCE}}", in.Experience,
		"{{DESCRIPTION}}", in.Description,
		"{{PORTFOLIO_LINKS}}", PortfolioLinkLines(in.PortfolioLinks),
		"{{LENGTH}}", length,
		"{{STYLE}}", style,
	)
	return replacer.Replace(coldEmailTemplate)
}

// PortfolioLinkLines renders links as "- <url>" lines, or a placeholder line when empty.
func PortfolioLinkLines(links []string) string {
	lines := make([]string, 0, len(links))
	for _, link := range links {
		if link = strings.TrimSpace(link); link != "" {
			lines = append(lines, "- "+link)
		}
	}
	if len(lines) == 0 {
		return noPortfolioLinks
	}
	return strings.Join(lines, "\n")
}
