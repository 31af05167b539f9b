package jobs

import "github.com/google/uuid"

// UnknownCompany names the company when the careers page could not be fetched.
const UnknownCompany = "Unknown Company"

var mockCatalog = []JobListing{
	{
		Title:       "Senior Full Stack Developer",
		Skills:      []string{"React", "Node.js", "Python", "AWS", "MongoDB"},
		Experience:  "5+ years",
		Description: "We are looking for a Senior Full Stack Developer to join our growing team. You will be responsible for developing and maintaining web applications using modern technologies.",
	},
	{
		Title:       "DevOps Engineer",
		Skills:      []string{"Docker", "Kubernetes", "AWS", "Jenkins", "Terraform"},
		Experience:  "3-5 years",
		Description: "Join our DevOps team to help build and maintain our cloud infrastructure. Experience with containerization and CI/CD pipelines required.",
	},
	{
		Title:       "Data Scientist",
		Skills:      []string{"Python", "Machine Learning", "SQL", "TensorFlow", "Pandas"},
		Experience:  "2-4 years",
		Description: "We're seeking a Data Scientist to analyze complex datasets and build predictive models. Strong background in statistics and machine learning required.",
	},
	{
		Title:       "Frontend Developer",
		Skills:      []string{"React", "TypeScript", "CSS", "JavaScript", "Redux"},
		Experience:  "2-3 years",
		Description: "Looking for a Frontend Developer to create engaging user interfaces. Experience with React and modern JavaScript frameworks is essential.",
	},
}

// MockCatalog returns the four canonical postings for company, each with a fresh id.
func MockCatalog(company string) []JobListing {
	out := make([]JobListing, 0, len(mockCatalog))
	for _, tmpl := range mockCatalog {
		job := tmpl.Clone()
		job.ID = uuid.NewString()
		job.Company = company
		out = append(out, job)
	}
	return out
}
