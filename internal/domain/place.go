package domain

// Place - узел OSM из ответа Overpass. После создания не изменяется.
type Place struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}
