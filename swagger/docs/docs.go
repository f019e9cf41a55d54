package docs

// swagger:parameters findEventById updateEventById deleteEventById toggleSaveEventById
type IdParam struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:parameters findAllEvents
type EventFilterParams struct {
	// in: query
	Category string `json:"category"`
	// in: query
	Location string `json:"location"`
	// in: query
	Search string `json:"search"`
}

// swagger:response
type Error struct {
	// The error message
	//in: body
	Message string
}

// swagger:response
type ValidationError struct {
	// Per field validation messages
	//in: body
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}
