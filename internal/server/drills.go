package server

import (
	"net/http"

	"github.com/example/terve/internal/drills"
	apperrors "github.com/example/terve/internal/errors"
	"github.com/labstack/echo/v4"
)

type verbCheckRequest struct {
	VerbID int64  `json:"verbId" form:"verbId"`
	Tense  string `json:"tense" form:"tense"`
	Person string `json:"person" form:"person"`
	Answer string `json:"answer" form:"answer"`
}

type nounCheckRequest struct {
	NounID int64  `json:"nounId" form:"nounId"`
	Case   string `json:"case" form:"case"`
	Number string `json:"number" form:"number"`
	Answer string `json:"answer" form:"answer"`
}

func (s *Server) verbPractice(c echo.Context) error {
	exercise, err := s.services.Drills.VerbPractice(c.Request().Context(), currentUser(c).CEFRLevel,
		c.QueryParam("tense"), c.QueryParam("person"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exercise)
}

func (s *Server) verbCheck(c echo.Context) error {
	var req verbCheckRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.VerbID <= 0 {
		return apperrors.InvalidInput("verbId is required")
	}

	result, err := s.services.Drills.CheckVerb(c.Request().Context(), req.VerbID, req.Tense, req.Person, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) nounPractice(c echo.Context) error {
	exercise, err := s.services.Drills.NounPractice(c.Request().Context(), currentUser(c).CEFRLevel,
		c.QueryParam("case"), c.QueryParam("number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, exercise)
}

func (s *Server) nounCheck(c echo.Context) error {
	var req nounCheckRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.NounID <= 0 {
		return apperrors.InvalidInput("nounId is required")
	}

	result, err := s.services.Drills.CheckNoun(c.Request().Context(), req.NounID, req.Case, req.Number, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) nounCases(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"cases": drills.CaseTable()})
}
