package domain

import "time"

type User struct {
	ID           string         `json:"id"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"passwordHash"`
	Phone        string         `json:"phone,omitempty"`
	Address      string         `json:"address,omitempty"`
	Favorites    []FavoriteItem `json:"favorites"`
	Bookings     []string       `json:"bookings"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// ItemData is the catalog snapshot the UI hands over when an item is
// favorited, added to the cart or booked.
type ItemData struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    Price  `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

type FavoriteItem struct {
	ItemData
	AddedAt time.Time `json:"addedAt"`
}

func (u *User) FavoriteIndex(itemID string) int {
	for i, fav := range u.Favorites {
		if fav.ID == itemID {
			return i
		}
	}
	return -1
}

func (u *User) HasFavorite(itemID string) bool {
	return u.FavoriteIndex(itemID) >= 0
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// ProfileUpdate carries the editable profile fields. Empty fields are left untouched.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
