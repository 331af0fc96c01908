package models

// Resource is a file stored by Casdoor's resource storage.
type Resource struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime,omitempty"`

	User        string `json:"user,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Application string `json:"application,omitempty"`
	Tag         string `json:"tag,omitempty"`
	Parent      string `json:"parent,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	FileType    string `json:"fileType,omitempty"`
	FileFormat  string `json:"fileFormat,omitempty"`
	FileSize    int    `json:"fileSize,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}
