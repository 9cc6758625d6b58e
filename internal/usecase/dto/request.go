package dto

// ManualLocationRequest - ручная установка координат
type ManualLocationRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// SetFiltersRequest - полная замена набора фильтров
type SetFiltersRequest struct {
	Filters []string `json:"filters" validate:"required,max=50,unique,dive,osmfilter"`
}

// AddFilterRequest - добавление одного фильтра
type AddFilterRequest struct {
	Filter string `json:"filter" validate:"required,osmfilter"`
}
