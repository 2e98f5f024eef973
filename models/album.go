package models

// AlbumItem is an album (event) of the local library catalog.
type AlbumItem struct {
	// AlbumID identifies the album inside the local catalog.
	AlbumID string `json:"id"`

	// Name is the display title used when the remote album is created.
	Name string `json:"name"`

	// KeyPhotoID is the LocalID of the album's cover photo. The remote album
	// is seeded with this photo.
	KeyPhotoID string `json:"key_photo_id"`

	// PhotoIDs lists member LocalIDs in catalog order.
	PhotoIDs []string `json:"photo_ids"`

	// CreatedAt is the catalog's creation-time key; albums are synchronised
	// in ascending CreatedAt order.
	CreatedAt int64 `json:"created_at"`
}

// Catalog is the full, read-only snapshot of the local library handed to the
// sync engine for one run.
type Catalog struct {
	Photos []PhotoItem `json:"photos"`
	Albums []AlbumItem `json:"albums"`
}
