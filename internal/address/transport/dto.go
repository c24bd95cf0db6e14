package transport

// SearchCitiesRequest binds the city search query parameter.
type SearchCitiesRequest struct {
	Query string `form:"query" validate:"required,min=2"`
}

// ListWarehousesRequest binds the warehouse list query parameters. Lookups go
// by settlement reference; a settlement name is accepted as a fallback.
type ListWarehousesRequest struct {
	CityRef  string `form:"cityRef" validate:"required_without=CityName"`
	CityName string `form:"cityName" validate:"required_without=CityRef"`
}
