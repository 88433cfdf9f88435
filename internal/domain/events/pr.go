package events

// PRIndicatorPayload is the payload for pr_indicator events.
type PRIndicatorPayload struct {
	HasOpenPR bool `json:"has_open_pr"`
}

// NewPRIndicatorEvent creates a new pr_indicator event.
func NewPRIndicatorEvent(hasOpenPR bool) *BaseEvent {
	return NewEvent(EventTypePRIndicator, PRIndicatorPayload{HasOpenPR: hasOpenPR})
}

// PRPayload describes a pull request in pr_* event payloads.
type PRPayload struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HeadRef string `json:"head_ref"`
	HTMLURL string `json:"html_url"`
}

// NewPRCreatedEvent creates a new pr_created event.
func NewPRCreatedEvent(number int, title, headRef, htmlURL string) *BaseEvent {
	return NewEvent(EventTypePRCreated, PRPayload{
		Number:  number,
		Title:   title,
		HeadRef: headRef,
		HTMLURL: htmlURL,
	})
}

// NewPRCheckedOutEvent creates a new pr_checked_out event.
func NewPRCheckedOutEvent(number int, headRef string) *BaseEvent {
	return NewEvent(EventTypePRCheckedOut, PRPayload{Number: number, HeadRef: headRef})
}

// NewPROpenedEvent creates a new pr_opened event.
func NewPROpenedEvent(number int, htmlURL string) *BaseEvent {
	return NewEvent(EventTypePROpened, PRPayload{Number: number, HTMLURL: htmlURL})
}

// PickItem is one selectable entry in a pick_request event.
type PickItem struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// PickRequestPayload is the payload for pick_request events.
type PickRequestPayload struct {
	Title string     `json:"title"`
	Items []PickItem `json:"items"`
}

// NewPickRequestEvent creates a new pick_request event. The request ID
// correlates the eventual ui/pick response with this request.
func NewPickRequestEvent(requestID, title string, items []PickItem) *BaseEvent {
	return NewEventWithRequestID(EventTypePickRequest, PickRequestPayload{
		Title: title,
		Items: items,
	}, requestID)
}
