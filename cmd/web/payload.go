package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/AdamBeresnev/brisa-tee-times/internal/service"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
)

const maxBodyBytes = 1 << 20

type playerPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	SMSOptIn  bool   `json:"sms_opt_in"`
}

type reservationPayload struct {
	Tournament string        `json:"tournament"`
	Day        string        `json:"day"`
	TeeTime    string        `json:"tee_time"`
	Player     playerPayload `json:"player"`
	Slot       *int          `json:"slot"`
}

type legacySubmitPayload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Tournament string `json:"tournament"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

type legacySubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (p reservationPayload) booking() service.BookingInput {
	return service.BookingInput{
		Tournament: p.Tournament,
		Day:        p.Day,
		TeeTime:    p.TeeTime,
		Player: service.PlayerInput{
			FirstName: p.Player.FirstName,
			LastName:  p.Player.LastName,
			Country:   p.Player.Country,
			Email:     p.Player.Email,
			Phone:     p.Player.Phone,
			SMSOptIn:  p.Player.SMSOptIn,
		},
		Slot: p.Slot,
	}
}

func (p reservationPayload) cancel() service.CancelInput {
	return service.CancelInput{
		Tournament: p.Tournament,
		Day:        p.Day,
		TeeTime:    p.TeeTime,
		FirstName:  p.Player.FirstName,
		LastName:   p.Player.LastName,
		Slot:       p.Slot,
	}
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// decodeReservation reads a JSON body, or form fields (body or query string) for any other content type.
func decodeReservation(w http.ResponseWriter, r *http.Request) (reservationPayload, error) {
	var p reservationPayload
	if isJSON(r) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			return p, fmt.Errorf("%w: invalid JSON body: %v", teetime.ErrValidation, err)
		}
		return p, nil
	}

	if err := r.ParseForm(); err != nil {
		return p, fmt.Errorf("%w: invalid form data: %v", teetime.ErrValidation, err)
	}
	p.Tournament = r.Form.Get("tournament")
	p.Day = r.Form.Get("day")
	p.TeeTime = r.Form.Get("tee_time")
	p.Player = playerPayload{
		FirstName: formValue(r, "first_name"),
		LastName:  formValue(r, "last_name"),
		Country:   formValue(r, "country"),
		Email:     formValue(r, "email"),
		Phone:     formValue(r, "phone"),
		SMSOptIn:  formBool(formValue(r, "sms_opt_in")),
	}
	if raw := strings.TrimSpace(r.Form.Get("slot")); raw != "" {
		slot, err := strconv.Atoi(raw)
		if err != nil {
			return p, fmt.Errorf("%w: slot must be a number", teetime.ErrValidation)
		}
		p.Slot = &slot
	}
	return p, nil
}

// formValue accepts both "first_name" and "player.first_name".
func formValue(r *http.Request, name string) string {
	if v := r.Form.Get(name); v != "" {
		return v
	}
	return r.Form.Get("player." + name)
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
