package usecase

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// 空は400。uuidの形でなければどの行にも当たらないので404（DBには渡さない）
func checkRowID(id string, emptyMessage string) error {
	if strings.TrimSpace(id) == "" {
		return NewHTTPError(http.StatusBadRequest, emptyMessage)
	}
	if len(id) != 36 {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if _, err := uuid.Parse(id); err != nil {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	return nil
}
