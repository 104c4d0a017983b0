package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

const (
	maxJSONBody = 1 << 20
	// multipart framing and text fields on top of the image itself
	multipartSlack  = 1 << 20
	multipartMemory = 8 << 20
)

// decodeRequest reads a candidate from a JSON or multipart body. The
// returned upload is nil when no image file part was sent.
func decodeRequest(w http.ResponseWriter, r *http.Request, maxUpload int64) (Candidate, *Upload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return decodeMultipart(w, r, maxUpload)
	}

	c, err := decodeJSON(w, r)
	return c, nil, err
}

func decodeJSON(w http.ResponseWriter, r *http.Request) (Candidate, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	defer func() { _ = r.Body.Close() }()

	var c Candidate
	err := json.NewDecoder(r.Body).Decode(&c)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return c, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field, _, _ := strings.Cut(typeErr.Field, ".")
		if field == "" {
			return Candidate{}, &ValidationError{Message: "request body must be a JSON object"}
		}
		return Candidate{}, typeViolation(field)
	}

	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		return Candidate{}, &ValidationError{Message: fmt.Sprintf("request body exceeds %d bytes", tooBig.Limit)}
	}

	return Candidate{}, &ValidationError{Message: "invalid JSON body"}
}

func decodeMultipart(w http.ResponseWriter, r *http.Request, maxUpload int64) (Candidate, *Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartSlack)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return Candidate{}, nil, &UploadError{Message: fmt.Sprintf("File too large: limit is %d bytes", maxUpload)}
		}
		return Candidate{}, nil, &ValidationError{Message: "invalid multipart body"}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	form := r.MultipartForm
	c, err := candidateFromForm(form.Value)
	if err != nil {
		return Candidate{}, nil, err
	}

	files := form.File["image"]
	if len(files) == 0 {
		return c, nil, nil
	}

	up, err := readUpload(files[0], maxUpload)
	if err != nil {
		return Candidate{}, nil, err
	}
	return c, up, nil
}

func candidateFromForm(values map[string][]string) (Candidate, error) {
	first := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	c := Candidate{
		Name:             first("name"),
		ShortDescription: first("shortDescription"),
		FullDescription:  first("fullDescription"),
		Price:            first("price"),
		Image:            first("image"),
	}

	if raw, ok := values["spf"]; ok && len(raw) > 0 {
		spf, err := strconv.ParseFloat(strings.TrimSpace(raw[0]), 64)
		if err != nil {
			return Candidate{}, typeViolation("spf")
		}
		c.SPF = &spf
	}

	var err error
	if c.Features, err = formList(values, "features"); err != nil {
		return Candidate{}, err
	}
	if c.MainIngredients, err = formList(values, "mainIngredients"); err != nil {
		return Candidate{}, err
	}
	return c, nil
}

// formList accepts either repeated form values or one JSON array string.
// A missing key yields nil so that the required rule reports it.
func formList(values map[string][]string, key string) ([]string, error) {
	raw, ok := values[key]
	if !ok || len(raw) == 0 {
		return nil, nil
	}

	if len(raw) == 1 && strings.HasPrefix(strings.TrimSpace(raw[0]), "[") {
		var out []string
		if err := json.Unmarshal([]byte(raw[0]), &out); err != nil || out == nil {
			return nil, typeViolation(key)
		}
		return out, nil
	}

	out := make([]string, len(raw))
	copy(out, raw)
	return out, nil
}

func readUpload(fh *multipart.FileHeader, maxUpload int64) (*Upload, error) {
	if fh.Size > maxUpload {
		return nil, &UploadError{Message: fmt.Sprintf("File too large: limit is %d bytes", maxUpload)}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return &Upload{Filename: fh.Filename, Data: data}, nil
}
