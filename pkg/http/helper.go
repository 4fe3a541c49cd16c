package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	apperrors "reservations/pkg/errors"

	"github.com/julienschmidt/httprouter"
)

func ExtractInt64Param(ps httprouter.Params, name string) (int64, error) {
	raw := ps.ByName(name)
	if raw == "" {
		return 0, apperrors.InvalidInput(fmt.Sprintf("missing %s parameter", name))
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.InvalidInput(fmt.Sprintf("invalid %s parameter: %s", name, raw))
	}
	return v, nil
}

func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if err == io.EOF {
			return apperrors.InvalidInput("Request body is empty")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.PayloadTooLarge(maxErr.Limit)
		}
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}
