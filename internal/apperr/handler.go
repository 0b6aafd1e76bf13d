package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/post-qa/internal/domain"
	"github.com/labstack/echo/v4"
)

// GlobalErrorHandler renders every handler error as an ErrorRecord.
func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusBadRequest, domain.NewErrorRecord(ve.Message))
			return
		}

		var ue *UpstreamError
		if errors.As(err, &ue) {
			slog.Error("Upstream service failed", "service", ue.Service, "error", ue.Err)
			_ = c.JSON(http.StatusBadGateway, domain.NewErrorRecord(ue.Service+" unavailable"))
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, domain.NewErrorRecord(msg))
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, domain.NewErrorRecord("internal server error"))
	}
}
