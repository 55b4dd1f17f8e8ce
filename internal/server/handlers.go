package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rishabhsingroha/hr-screener/internal/screening"
)

type evaluateRequest struct {
	Transcript string `json:"transcript" validate:"required"`
	Language   string `json:"language" validate:"omitempty,bcp47_language_tag"`
}

type processResponseRequest struct {
	AudioURL string `json:"audio_url" query:"audio_url" validate:"required,url"`
}

func (s *Server) root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "HR screener is running"})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) evaluate(c echo.Context) error {
	var req evaluateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s.logger.Debug("evaluating transcript", zap.String("language", req.Language))

	result := s.screener.Screen(c.Request().Context(), req.Transcript)
	return c.JSON(http.StatusOK, result.Result)
}

func (s *Server) processResponse(c echo.Context) error {
	if !s.screener.CanTranscribe() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, screening.ErrNoTranscriber.Error())
	}

	var req processResponseRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return err
	}
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := s.screener.ScreenAudio(c.Request().Context(), req.AudioURL)
	if err != nil {
		s.logger.Error("process response failed", zap.String("audio_url", req.AudioURL), zap.Error(err))
		if errors.Is(err, screening.ErrNoTranscriber) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, result.Result)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
