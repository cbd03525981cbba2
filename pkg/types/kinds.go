package types

// Entity kinds. The set is closed.
const (
	KindBaseModel = "BaseModel"
	KindUser      = "User"
	KindState     = "State"
	KindCity      = "City"
	KindAmenity   = "Amenity"
	KindPlace     = "Place"
	KindReview    = "Review"
)

// Kinds lists every recognized kind in display order.
var Kinds = []string{
	KindBaseModel,
	KindUser,
	KindState,
	KindCity,
	KindAmenity,
	KindPlace,
	KindReview,
}

// constructors builds zero-valued instances with per-instance defaults.
var constructors = map[string]func() Entity{
	KindBaseModel: func() Entity { return &BaseModel{} },
	KindUser:      func() Entity { return &User{} },
	KindState:     func() Entity { return &State{} },
	KindCity:      func() Entity { return &City{} },
	KindAmenity:   func() Entity { return &Amenity{} },
	KindPlace:     func() Entity { return &Place{AmenityIDs: []string{}} },
	KindReview:    func() Entity { return &Review{} },
}

// IsKind reports whether kind is one of the recognized entity kinds.
func IsKind(kind string) bool {
	_, ok := constructors[kind]
	return ok
}

func blank(kind string) (Entity, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, ErrUnknownKind
	}
	return ctor(), nil
}

// User is an account holder.
type User struct {
	BaseModel
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (u *User) Kind() string { return KindUser }

func (u *User) attributes() []attribute {
	return []attribute{
		{"email", &u.Email},
		{"password", &u.Password},
		{"first_name", &u.FirstName},
		{"last_name", &u.LastName},
	}
}

// State is a geographic state.
type State struct {
	BaseModel
	Name string
}

func (s *State) Kind() string { return KindState }

func (s *State) attributes() []attribute {
	return []attribute{{"name", &s.Name}}
}

// City belongs to a State through StateID.
type City struct {
	BaseModel
	StateID string
	Name    string
}

func (c *City) Kind() string { return KindCity }

func (c *City) attributes() []attribute {
	return []attribute{
		{"state_id", &c.StateID},
		{"name", &c.Name},
	}
}

// Amenity is a feature a Place can offer.
type Amenity struct {
	BaseModel
	Name string
}

func (a *Amenity) Kind() string { return KindAmenity }

func (a *Amenity) attributes() []attribute {
	return []attribute{{"name", &a.Name}}
}

// Place is a rentable listing. AmenityIDs is owned by the instance; two
// places never share the backing slice.
type Place struct {
	BaseModel
	CityID          string
	UserID          string
	Name            string
	Description     string
	NumberRooms     int
	NumberBathrooms int
	MaxGuest        int
	PriceByNight    int
	Latitude        float64
	Longitude       float64
	AmenityIDs      []string
}

func (p *Place) Kind() string { return KindPlace }

func (p *Place) attributes() []attribute {
	return []attribute{
		{"city_id", &p.CityID},
		{"user_id", &p.UserID},
		{"name", &p.Name},
		{"description", &p.Description},
		{"number_rooms", &p.NumberRooms},
		{"number_bathrooms", &p.NumberBathrooms},
		{"max_guest", &p.MaxGuest},
		{"price_by_night", &p.PriceByNight},
		{"latitude", &p.Latitude},
		{"longitude", &p.Longitude},
		{"amenity_ids", &p.AmenityIDs},
	}
}

// Review is a user's text about a place.
type Review struct {
	BaseModel
	PlaceID string
	UserID  string
	Text    string
}

func (r *Review) Kind() string { return KindReview }

func (r *Review) attributes() []attribute {
	return []attribute{
		{"place_id", &r.PlaceID},
		{"user_id", &r.UserID},
		{"text", &r.Text},
	}
}
