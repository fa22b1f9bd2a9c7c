package domain

type ReviewID int64

type Review struct {
	ID          ReviewID `json:"id,omitempty"`
	PatientName string   `json:"hastaAd"`
	Comment     string   `json:"yorum"`
	CreatedAt   string   `json:"tarih,omitempty"`
	Rating      int      `json:"rating"`
	Approved    bool     `json:"approved"`
}

func (r Review) Stars() string {
	rating := r.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	stars := make([]rune, 0, 5)
	for i := 0; i < 5; i++ {
		if i < rating {
			stars = append(stars, '★')
		} else {
			stars = append(stars, '☆')
		}
	}
	return string(stars)
}

type Admin struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Statistics is the admin summary payload; its shape is owned by the API.
type Statistics map[string]any
