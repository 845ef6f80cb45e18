package model

type ConvertResponse struct {
	ID   string `json:"id"`
	Song Song   `json:"song"`
}

type SongListResponse struct {
	IDs []string `json:"ids"`
}

type KeymapEntry struct {
	Pitch int    `json:"pitch"`
	Name  string `json:"name"`
	Key   string `json:"key"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
