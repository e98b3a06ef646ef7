package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-mobile-messaging/internal/config"
	"github.com/MKhiriev/go-mobile-messaging/internal/logger"
	"github.com/MKhiriev/go-mobile-messaging/internal/retry"
	"github.com/MKhiriev/go-mobile-messaging/internal/utils"
	"github.com/MKhiriev/go-mobile-messaging/models"
)

// Request headers understood by the backend.
const (
	HeaderAuthorization      = "Authorization"
	HeaderPushRegistrationID = "pushregistrationid"
	HeaderInstallationID     = "installationid"
	HeaderSessionID          = "sessionid"
	HeaderForeground         = "foreground"
)

type httpMobileAPI struct {
	client    *utils.HTTPClient
	identity  Identity
	baseURL   *baseURLManager
	sessionID string

	logger *logger.Logger
}

// NewHTTPMobileAPI constructs the HTTP/REST implementation of [MobileAPI].
// Requests go to the base URL supplied by identity; cfg.BaseURL is only
// validated here.
func NewHTTPMobileAPI(cfg config.Adapter, identity Identity, log *logger.Logger) (MobileAPI, error) {
	if _, err := normalizeBaseURL(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	log = log.WithComponent("adapter")
	return &httpMobileAPI{
		client:    utils.NewHTTPClient(cfg.RequestTimeout, log.Logger),
		identity:  identity,
		baseURL:   &baseURLManager{identity: identity, logger: log},
		sessionID: utils.NewID(),
		logger:    log,
	}, nil
}

func (h *httpMobileAPI) CreateInstance(ctx context.Context, inst models.Installation) (models.Installation, error) {
	var created models.Installation
	if err := h.do(ctx, http.MethodPost, "/mobile/1/appinstance", inst, &created); err != nil {
		return models.Installation{}, err
	}
	return created, nil
}

func (h *httpMobileAPI) PatchInstance(ctx context.Context, pushRegID string, inst models.Installation) error {
	path, err := instancePath("/mobile/1/appinstance/%s", pushRegID)
	if err != nil {
		return err
	}
	return h.do(ctx, http.MethodPatch, path, inst, nil)
}

func (h *httpMobileAPI) GetInstance(ctx context.Context, pushRegID string) (models.Installation, error) {
	path, err := instancePath("/mobile/1/appinstance/%s", pushRegID)
	if err != nil {
		return models.Installation{}, err
	}

	var inst models.Installation
	if err = h.do(ctx, http.MethodGet, path, nil, &inst); err != nil {
		return models.Installation{}, err
	}
	return inst, nil
}

func (h *httpMobileAPI) PatchUser(ctx context.Context, pushRegID string, user models.UserData) error {
	path, err := instancePath("/mobile/8/appinstance/%s/user", pushRegID)
	if err != nil {
		return err
	}
	return h.do(ctx, http.MethodPatch, path, user, nil)
}

func (h *httpMobileAPI) GetUser(ctx context.Context, pushRegID string) (models.UserData, error) {
	path, err := instancePath("/mobile/8/appinstance/%s/user", pushRegID)
	if err != nil {
		return models.UserData{}, err
	}

	var user models.UserData
	if err = h.do(ctx, http.MethodGet, path, nil, &user); err != nil {
		return models.UserData{}, err
	}
	return user, nil
}

func (h *httpMobileAPI) SyncMessages(ctx context.Context, req models.SyncMessagesRequest) (models.SyncMessagesResponse, error) {
	var resp models.SyncMessagesResponse
	if err := h.do(ctx, http.MethodPost, "/mobile/5/messages", req, &resp); err != nil {
		return models.SyncMessagesResponse{}, err
	}
	return resp, nil
}

func (h *httpMobileAPI) ReportDelivery(ctx context.Context, ids []string) error {
	return h.do(ctx, http.MethodPost, "/mobile/1/messages/deliveryreport", models.DeliveryReportRequest{MessageIDs: ids}, nil)
}

func (h *httpMobileAPI) ReportSeen(ctx context.Context, report models.SeenMessagesReport) error {
	return h.do(ctx, http.MethodPost, "/mobile/2/messages/seen", report, nil)
}

func (h *httpMobileAPI) SendMO(ctx context.Context, pushRegID string, req models.MOMessagesRequest) (models.MOMessagesResponse, error) {
	if pushRegID == "" {
		return models.MOMessagesResponse{}, retry.Permanent(ErrMissingRegistration)
	}
	req.From = pushRegID

	var resp models.MOMessagesResponse
	if err := h.do(ctx, http.MethodPost, "/mobile/1/messages/mo", req, &resp); err != nil {
		return models.MOMessagesResponse{}, err
	}
	return resp, nil
}

// do sends one request to the current base URL and maps the outcome.
// result may be nil when the response body is not needed.
func (h *httpMobileAPI) do(ctx context.Context, method, path string, body, result any) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeader(HeaderAuthorization, "App "+h.identity.ApplicationCode()).
		SetHeader(HeaderSessionID, h.sessionID).
		SetHeader(HeaderForeground, "false")

	if id, err := h.identity.UniversalInstallationID(ctx); err == nil && id != "" {
		req.SetHeader(HeaderInstallationID, id)
	}
	if regID, err := h.identity.PushRegistrationID(ctx); err == nil && regID != "" {
		req.SetHeader(HeaderPushRegistrationID, regID)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	target := h.baseURL.current(ctx) + path
	h.logger.Debug().Str("method", method).Str("url", target).Msg(">>> request")

	resp, err := req.Execute(method, target)
	if err != nil {
		h.baseURL.observe(ctx, 0, "", err)
		h.logger.Debug().Err(err).Str("method", method).Str("url", target).Msg("<<< transport error")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	h.logger.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode()).
		Dur("elapsed", resp.Time()).
		Msg("<<< response")

	h.baseURL.observe(ctx, resp.StatusCode(), resp.Header().Get(HeaderNewBaseURL), nil)
	return mapHTTPError(resp)
}

func instancePath(format, pushRegID string) (string, error) {
	if pushRegID == "" {
		return "", retry.Permanent(ErrMissingRegistration)
	}
	return fmt.Sprintf(format, url.PathEscape(pushRegID)), nil
}
