package emails

import (
	"fmt"
	"strings"

	"outreach-backend/internal/jobs"
)

const fallbackLetter = `Dear %[1]s Hiring Team,

I noticed you're actively hiring for a %[2]s position. Finding the right talent with skills in %[3]s can be challenging and time-consuming.

At Atliq, we specialize in providing dedicated engineers who can seamlessly integrate with your team. Instead of spending months on recruitment, we can provide you with pre-vetted professionals who have the exact skills you need.

Our approach offers:
• 50%% faster deployment compared to traditional hiring
• Cost savings of up to 40%% on recruitment and onboarding
• Access to engineers with proven expertise in %[4]s
• Flexible engagement models to match your project needs

We've successfully helped companies like yours scale their technical teams efficiently. Our engineers are ready to contribute from day one, ensuring your projects stay on track.

Would you be open to a brief 15-minute call to discuss how we can help solve your %[2]s requirements? I'd love to share specific examples of how we've helped similar companies.

Best regards,
[Your Name]
Atliq Solutions
Email: business@atliq.com
Phone: +1-555-123-4567`

// FallbackSubject is the template subject for job title.
func FallbackSubject(title string) string {
	return fmt.Sprintf("Solve Your %s Hiring Challenge - Atliq Can Help", title)
}

// FallbackDraft renders the offline letter. It names the first three skills, then the
// first two, and never mentions portfolio links.
func FallbackDraft(job jobs.JobListing) Draft {
	return Draft{
		Subject:      FallbackSubject(job.Title),
		Body:         fmt.Sprintf(fallbackLetter, job.Company, job.Title, joinFirst(job.Skills, 3), joinFirst(job.Skills, 2)),
		FromTemplate: true,
	}
}

func joinFirst(skills []string, n int) string {
	if len(skills) > n {
		skills = skills[:n]
	}
	return strings.Join(skills, ", ")
}
