// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/IronBlyzer/Movies/middleware"
	"github.com/IronBlyzer/Movies/models"
)

// Method is an HTTP verb a resource can branch on.
type Method int

const (
	MethodUnknown Method = iota
	MethodGet
	MethodPost
	MethodPut
	MethodDelete
)

// ParseMethod maps a request method to a Method. Anything other than
// GET, POST, PUT and DELETE is MethodUnknown.
func ParseMethod(method string) Method {
	switch method {
	case http.MethodGet:
		return MethodGet
	case http.MethodPost:
		return MethodPost
	case http.MethodPut:
		return MethodPut
	case http.MethodDelete:
		return MethodDelete
	default:
		return MethodUnknown
	}
}

func (m Method) String() string {
	switch m {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	case MethodPut:
		return http.MethodPut
	case MethodDelete:
		return http.MethodDelete
	default:
		return "UNKNOWN"
	}
}

// Routes maps each verb a resource supports to its branch. Verbs without
// an entry get 400 {"status":400,"msg":"HTTP METHOD NOT FOUND"}.
type Routes map[Method]http.HandlerFunc

func (rt Routes) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if branch, ok := rt[ParseMethod(r.Method)]; ok && branch != nil {
		branch(w, r)
		return
	}
	middleware.MessageResponse(w, http.StatusBadRequest, models.MsgMethodNotFound)
}
