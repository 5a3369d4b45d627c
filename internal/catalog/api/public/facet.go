package public

type TagList struct {
	Kind  string   `json:"kind"`
	Items []string `json:"items"`
}

type CountryOfOrigin struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type CountryOfOriginList struct {
	Kind  string            `json:"kind"`
	Items []CountryOfOrigin `json:"items"`
}
