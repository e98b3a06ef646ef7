package adapter

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const serviceExceptionPath = "requestError.serviceException"

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	backendErr := &BackendError{Status: resp.StatusCode()}

	body := resp.Body()
	if exception := gjson.GetBytes(body, serviceExceptionPath); exception.Exists() {
		backendErr.Code = exception.Get("messageId").String()
		backendErr.Message = exception.Get("text").String()
	}

	if backendErr.Message == "" {
		backendErr.Message = strings.TrimSpace(string(body))
	}
	if backendErr.Message == "" {
		backendErr.Message = http.StatusText(resp.StatusCode())
	}

	return backendErr
}
