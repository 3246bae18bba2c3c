package api

const (
	ContentType         = "Content-Type"
	ApplicationJSONType = "application/json"

	sessionIDParam = "id"
)
