package settings

type Settings struct {
	ViewerID        int64
	PageLimit       int
	FingerprintSize string
	TeleportPlaceID int64
}
