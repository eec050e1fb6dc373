package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tribe string

const (
	TribeNosferati   Tribe = "Nosferati"
	TribeValhars     Tribe = "Valhars"
	TribeSaharans    Tribe = "Saharans"
	TribeGlimmerkins Tribe = "Glimmerkins"
	TribeNeutrals    Tribe = "Neutrals"
)

// Tribes lists every tribe in declaration order.
var Tribes = []Tribe{TribeNosferati, TribeValhars, TribeSaharans, TribeGlimmerkins, TribeNeutrals}

// TribeStats is the starting attribute bundle granted by a tribe.
type TribeStats struct {
	Strength     int
	Intelligence int
	Agility      int
	Wise         int
	Psycho       int
}

// ParseTribe returns the tribe named s and whether it is one of the five known values.
func ParseTribe(s string) (Tribe, bool) {
	for _, t := range Tribes {
		if string(t) == s {
			return t, true
		}
	}
	return Tribe(s), false
}

// Stats returns the starting stats for the tribe. Neutrals and any unknown
// value get the balanced bundle.
func (t Tribe) Stats() TribeStats {
	switch t {
	case TribeNosferati:
		return TribeStats{Strength: 2, Intelligence: 8, Agility: 2, Wise: 1, Psycho: 10}
	case TribeValhars:
		return TribeStats{Strength: 10, Intelligence: 1, Agility: 6, Wise: 6, Psycho: 2}
	case TribeSaharans:
		return TribeStats{Strength: 2, Intelligence: 9, Agility: 3, Wise: 10, Psycho: 1}
	case TribeGlimmerkins:
		return TribeStats{Strength: 2, Intelligence: 10, Agility: 2, Wise: 7, Psycho: 4}
	default:
		return TribeStats{Strength: 5, Intelligence: 5, Agility: 5, Wise: 5, Psycho: 5}
	}
}

func (t Tribe) Description() string {
	switch t {
	case TribeNosferati:
		return "The Nosferati are a tribe of nocturnal beings who thrive in the shadows. Known for their agility and cunning, they possess a mysterious " +
			"allure and a penchant for the dark arts. Their homeland is a gothic realm of eternal night, filled with ancient castles and dark forests."
	case TribeValhars:
		return "The Valhars are a tribe of mighty warriors and seafarers from the frozen north. They are renowned for their strength, bravery, and indomitable " +
			"spirit. Living in a rugged landscape of snow-capped mountains and fjords, they honor their ancestors through epic sagas and battles."
	case TribeSaharans:
		return "The Saharans hail from a vast desert land of golden sands and ancient cities. They are known for their intelligence, wisdom, and mastery of " +
			"mystical arts. Their culture is rich with tales of legendary heroes, enchanted oases, and hidden treasures."
	case TribeGlimmerkins:
		return "The Glimmerkins are a tribe of ingenious and whimsical beings who inhabit lush, enchanted forests and underground burrows. They are " +
			"celebrated for their inventiveness, agility, and cheerful disposition. Their society thrives on creativity, clockwork inventions, " +
			"and the magic of nature."
	case TribeNeutrals:
		return "The Neutrals are those who have chosen not to align themselves with any particular tribe. They are versatile and independent individuals who " +
			"prefer to forge their own path. While they do not possess the specific traits of the tribes, they benefit from a balanced set of attributes " +
			"and the freedom to adapt to any situation."
	default:
		return ""
	}
}

type User struct {
	ID              uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Username        string    `gorm:"size:18;uniqueIndex;not null" json:"username"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Tribe           Tribe     `gorm:"size:20;index;not null" json:"tribe"`
	Password        string    `gorm:"size:255;not null" json:"-"`
	Biography       *string   `gorm:"size:500" json:"biography"`
	ProfilePicture  *string   `gorm:"size:2048" json:"profile_picture"`
	BackgroundImage *string   `gorm:"size:2048" json:"background_image"`
	Strength        int       `gorm:"not null" json:"strength"`
	Intelligence    int       `gorm:"not null" json:"intelligence"`
	Agility         int       `gorm:"not null" json:"agility"`
	Wise            int       `gorm:"not null" json:"wise"`
	Psycho          int       `gorm:"not null" json:"psycho"`
	Experience      int       `gorm:"not null" json:"experience"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ApplyStats overwrites the five attributes with s.
func (u *User) ApplyStats(s TribeStats) {
	u.Strength = s.Strength
	u.Intelligence = s.Intelligence
	u.Agility = s.Agility
	u.Wise = s.Wise
	u.Psycho = s.Psycho
}

type UserCreate struct {
	Username        string  `json:"username" validate:"required,min=3,max=18"`
	Email           string  `json:"email" validate:"required,email"`
	Tribe           Tribe   `json:"tribe" validate:"required,oneof=Nosferati Valhars Saharans Glimmerkins Neutrals"`
	Password        string  `json:"password" validate:"required,min=4"`
	Biography       *string `json:"biography" validate:"omitempty,max=500"`
	ProfilePicture  *string `json:"profile_picture" validate:"omitempty,max=255"`
	BackgroundImage *string `json:"background_image" validate:"omitempty,max=255"`
}

type UserUpdate struct {
	Username        *string `json:"username" validate:"omitempty,min=3,max=18"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Tribe           *Tribe  `json:"tribe" validate:"omitempty,oneof=Nosferati Valhars Saharans Glimmerkins Neutrals"`
	Biography       *string `json:"biography" validate:"omitempty,max=500"`
	ProfilePicture  *string `json:"profile_picture" validate:"omitempty,max=255"`
	BackgroundImage *string `json:"background_image" validate:"omitempty,max=255"`
	Strength        *int    `json:"strength"`
	Intelligence    *int    `json:"intelligence"`
	Agility         *int    `json:"agility"`
	Wise            *int    `json:"wise"`
	Psycho          *int    `json:"psycho"`
	Experience      *int    `json:"experience"`
}

// Columns returns the column updates for the fields that were set.
// Stats are never recomputed from a new tribe.
func (u UserUpdate) Columns() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Username != nil {
		updates["username"] = *u.Username
	}
	if u.Email != nil {
		updates["email"] = *u.Email
	}
	if u.Tribe != nil {
		updates["tribe"] = *u.Tribe
	}
	if u.Biography != nil {
		updates["biography"] = *u.Biography
	}
	if u.ProfilePicture != nil {
		updates["profile_picture"] = *u.ProfilePicture
	}
	if u.BackgroundImage != nil {
		updates["background_image"] = *u.BackgroundImage
	}
	if u.Strength != nil {
		updates["strength"] = *u.Strength
	}
	if u.Intelligence != nil {
		updates["intelligence"] = *u.Intelligence
	}
	if u.Agility != nil {
		updates["agility"] = *u.Agility
	}
	if u.Wise != nil {
		updates["wise"] = *u.Wise
	}
	if u.Psycho != nil {
		updates["psycho"] = *u.Psycho
	}
	if u.Experience != nil {
		updates["experience"] = *u.Experience
	}
	return updates
}

type UserUpdatePassword struct {
	Password string `json:"password" validate:"required,min=4"`
}
