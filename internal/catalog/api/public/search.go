package public

// SearchCriteria filters catalog searches. Absent fields impose no
// constraint; all present fields are combined with AND except the keyword,
// which matches name, display name or description.
type SearchCriteria struct {
	Keyword        string `json:"keyword,omitempty"`
	LifecycleState string `json:"lifecycle_state,omitempty"`
	Tag            string `json:"tag,omitempty"`
	Country        string `json:"country_of_origin,omitempty"`
	Maintainer     string `json:"maintainer,omitempty"`
	SystemVersion  string `json:"system_version,omitempty"`
}
