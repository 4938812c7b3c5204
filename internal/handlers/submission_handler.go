package handlers

import (
	"fmt"
	"io"
	"net/http"

	"goldantelope/internal/models"
	"goldantelope/internal/services"
)

// maxSubmissionMemory bounds multipart form parsing; individual photos
// are limited separately by the moderation service.
const maxSubmissionMemory = 8 << 20

type SubmissionHandler struct {
	Moderation *services.ModerationService
}

// formValue returns the form field or a default when absent or empty.
func formValue(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

// formPhotos reads the attached photo files photo_0..photo_3.
func formPhotos(r *http.Request) ([]models.PhotoUpload, error) {
	var photos []models.PhotoUpload
	for i := 0; i < 4; i++ {
		file, header, err := r.FormFile(fmt.Sprintf("photo_%d", i))
		if err == http.ErrMissingFile {
			continue
		}
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		photos = append(photos, models.PhotoUpload{Filename: header.Filename, Data: data})
	}
	return photos, nil
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request, sub models.Submission) {
	country, err := countryParam(r)
	if err != nil {
		serviceError(w, err)
		return
	}
	photos, err := formPhotos(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid photo upload")
		return
	}

	id, err := h.Moderation.Submit(r.Context(), country,
		r.FormValue("captcha_token"), r.FormValue("captcha_answer"), sub, photos)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
		"message": "Заявка отправлена на модерацию",
	})
}

func (h *SubmissionHandler) SubmitListing(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmissionMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	h.submit(w, r, models.RealEstateSubmission{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Rooms:       r.FormValue("rooms"),
		Area:        r.FormValue("area"),
		Location:    r.FormValue("location"),
		City:        r.FormValue("city"),
		ContactName: r.FormValue("contact_name"),
		Whatsapp:    r.FormValue("whatsapp"),
		Telegram:    r.FormValue("telegram"),
		ListingType: formValue(r, "listing_type", "rent"),
	})
}

func (h *SubmissionHandler) SubmitRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmissionMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	h.submit(w, r, models.RestaurantSubmission{
		Title:          r.FormValue("title"),
		Description:    r.FormValue("description"),
		Kitchen:        r.FormValue("kitchen"),
		Location:       r.FormValue("location"),
		City:           r.FormValue("city"),
		GoogleMaps:     r.FormValue("google_maps"),
		ContactName:    r.FormValue("contact_name"),
		Whatsapp:       r.FormValue("whatsapp"),
		Telegram:       r.FormValue("telegram"),
		PriceCategory:  formValue(r, "price_category", "normal"),
		RestaurantType: formValue(r, "restaurant_type", "ресторан"),
	})
}

func (h *SubmissionHandler) SubmitEntertainment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmissionMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	h.submit(w, r, models.EntertainmentSubmission{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Feature:     r.FormValue("feature"),
		Location:    r.FormValue("location"),
		City:        r.FormValue("city"),
		ContactName: r.FormValue("contact_name"),
		Whatsapp:    r.FormValue("whatsapp"),
		Telegram:    r.FormValue("telegram"),
		Capacity:    formValue(r, "capacity", "50"),
	})
}

func (h *SubmissionHandler) SubmitTour(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmissionMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	h.submit(w, r, models.TourSubmission{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Days:        formValue(r, "days", "1"),
		Price:       r.FormValue("price"),
		Location:    r.FormValue("location"),
		City:        r.FormValue("city"),
		ContactName: r.FormValue("contact_name"),
		Whatsapp:    r.FormValue("whatsapp"),
		Telegram:    r.FormValue("telegram"),
		GroupSize:   formValue(r, "group_size", "5"),
	})
}

func (h *SubmissionHandler) SubmitTransport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmissionMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	h.submit(w, r, models.TransportSubmission{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Engine:        r.FormValue("engine"),
		Year:          r.FormValue("year"),
		Price:         r.FormValue("price"),
		TransportType: formValue(r, "transport_type", "bikes"),
		Location:      r.FormValue("location"),
		City:          r.FormValue("city"),
		ContactName:   r.FormValue("contact_name"),
		Whatsapp:      r.FormValue("whatsapp"),
		Telegram:      r.FormValue("telegram"),
	})
}

func (h *SubmissionHandler) SubmitKids(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxSubmissionMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form")
		return
	}
	h.submit(w, r, models.KidsSubmission{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		KidsType:    formValue(r, "kids_type", "events"),
		City:        r.FormValue("city"),
		Age:         r.FormValue("age"),
		Location:    r.FormValue("location"),
		GoogleMaps:  r.FormValue("google_maps"),
		ContactName: r.FormValue("contact_name"),
		Whatsapp:    r.FormValue("whatsapp"),
		Telegram:    r.FormValue("telegram"),
	})
}
