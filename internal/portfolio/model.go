package portfolio

import "strings"

// Entry is one showcased project.
type Entry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
}

// Document is the text indexed for similarity search.
func (e Entry) Document() string {
	return e.Title + " " + e.Description + " " + strings.Join(e.Technologies, " ")
}

// Hit is a search result; higher Score is more relevant.
type Hit struct {
	Entry Entry
	Score float64
}

var fallbackLinks = []string{
	"https://atliq.com/portfolio/web-development",
	"https://atliq.com/portfolio/cloud-solutions",
	"https://atliq.com/portfolio/mobile-apps",
}

// FallbackLinks returns the generic links used when search fails.
func FallbackLinks() []string {
	return append([]string(nil), fallbackLinks...)
}

// SeedCatalog returns the projects indexed at startup.
func SeedCatalog() []Entry {
	return []Entry{
		{
			ID:           "1",
			Title:        "E-commerce Platform Modernization",
			Description:  "Modernized legacy e-commerce platform using React, Node.js, and AWS. Improved performance by 60% and reduced server costs by 40%.",
			Technologies: []string{"React", "Node.js", "AWS", "MongoDB", "Redis"},
			URL:          "https://atliq.com/portfolio/ecommerce-modernization",
		},
		{
			ID:           "2",
			Title:        "DevOps Infrastructure Automation",
			Description:  "Implemented CI/CD pipeline using Jenkins, Docker, and Kubernetes. Reduced deployment time from 2 hours to 15 minutes.",
			Technologies: []string{"Jenkins", "Docker", "Kubernetes", "AWS", "Terraform"},
			URL:          "https://atliq.com/portfolio/devops-automation",
		},
		{
			ID:           "3",
			Title:        "Machine Learning Analytics Dashboard",
			Description:  "Built ML-powered analytics dashboard using Python, TensorFlow, and React. Increased business insights by 80%.",
			Technologies: []string{"Python", "TensorFlow", "React", "PostgreSQL", "Docker"},
			URL:          "https://atliq.com/portfolio/ml-dashboard",
		},
		{
			ID:           "4",
			Title:        "Mobile App Development",
			Description:  "Developed cross-platform mobile app using React Native and Firebase. Deployed to 100k+ users with 4.8 star rating.",
			Technologies: []string{"React Native", "Firebase", "TypeScript", "Redux"},
			URL:          "https://atliq.com/portfolio/mobile-app",
		},
		{
			ID:           "5",
			Title:        "Cloud Migration & Optimization",
			Description:  "Migrated on-premise infrastructure to AWS cloud. Achieved 99.9% uptime and 30% cost reduction.",
			Technologies: []string{"AWS", "Lambda", "RDS", "CloudFormation", "S3"},
			URL:          "https://atliq.com/portfolio/cloud-migration",
		},
		{
			ID:           "6",
			Title:        "Full-Stack Web Application",
			Description:  "Built scalable web application using MERN stack. Handles 10k+ concurrent users with real-time features.",
			Technologies: []string{"MongoDB", "Express.js", "React", "Node.js", "Socket.io"},
			URL:          "https://atliq.com/portfolio/fullstack-app",
		},
	}
}
