package response

import "github.com/Demianms/MuseosApp/internal/domain"

type Catalog struct {
	Museums    []domain.Museum   `json:"museums"`
	Categories []domain.Category `json:"categories"`
}

type Room struct {
	MuseumID int `json:"museum_id"`
	domain.Room
}
