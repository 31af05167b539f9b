package jobs

// JobListing is one posting discovered on a careers page.
type JobListing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience"`
	Description string   `json:"description"`
	Company     string   `json:"company"`
}

// Clone returns a copy that shares no slices with j.
func (j JobListing) Clone() JobListing {
	out := j
	out.Skills = append([]string{}, j.Skills...)
	return out
}
