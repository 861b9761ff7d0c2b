package models

// ProfileUpdate is the body of PUT /profile/.
type ProfileUpdate struct {
	Name         string `json:"name" validate:"required"`
	Username     string `json:"username" validate:"required"`
	DateOfBirth  string `json:"dateOfBirth"`
	Bio          string `json:"bio"`
	Gender       string `json:"gender"`
	ShowASLBadge bool   `json:"showASLBadge"`
}

// TranslationRequest is the body of POST /translate/.
type TranslationRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// TranslationResponse is returned by POST /translate/.
type TranslationResponse struct {
	Translation string `json:"translation"`
}

// ChatItem is one entry of the pinned or recent chat lists.
type ChatItem struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Time    string `json:"time,omitempty"`
	Unread  int    `json:"unread,omitempty"`
}

// SearchResult is one hit returned by GET /search/.
type SearchResult struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Followers string `json:"followers,omitempty"`
	Verified  bool   `json:"verified"`
}

// VideoResult is returned by POST /process-video/.
type VideoResult struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Status   string `json:"status"`
}
