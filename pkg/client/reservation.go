package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"chedoparti/pkg/availability"
	"chedoparti/pkg/model"
	"chedoparti/pkg/pricing"
)

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseUrl string) *ReservationClient {
	return &ReservationClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *ReservationClient) Create(body any, headers map[string]string) (*Response, error) {
	return c.httpClient.POSTWithHeaders("/api/v1/reservations", body, headers)
}

func (c *ReservationClient) GetAll(limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/v1/reservations?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(path)
}

func (c *ReservationClient) Search(courtID, date string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("court_id", courtID)
	if date != "" {
		q.Set("date", date)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))

	path := "/api/v1/reservations/search?" + q.Encode()
	return c.httpClient.GET(path)
}

func (c *ReservationClient) GetByID(id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.GET(path)
}

func (c *ReservationClient) Update(id string, body any) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.PATCH(path, body)
}

func (c *ReservationClient) Cancel(id string) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.DELETE(path)
}

func (c *ReservationClient) Availability(courtID, date, start string) (*Response, error) {
	q := url.Values{}
	q.Set("court_id", courtID)
	q.Set("date", date)
	q.Set("start", start)
	return c.httpClient.GET("/api/v1/reservations/availability?" + q.Encode())
}

func (c *ReservationClient) Quote(body any) (*Response, error) {
	return c.httpClient.POST("/api/v1/reservations/quote", body)
}

func (c *ReservationClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw("/api/v1/reservations", rawBody)
}

func (c *ReservationClient) UpdateRaw(id string, rawBody []byte) (*Response, error) {
	path := "/api/v1/reservations/id/" + url.PathEscape(id)
	return c.httpClient.PATCHRaw(path, rawBody)
}

func (c *ReservationClient) DecodeReservation(resp *Response) (*model.Reservation, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode reservation wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var reservation model.Reservation
	if err := json.Unmarshal(wrapper.Data, &reservation); err != nil {
		return nil, fmt.Errorf("could not decode reservation json:\n%+v\n%s", resp.ToString(), err)
	}

	return &reservation, nil
}

func (c *ReservationClient) DecodeAvailability(resp *Response) ([]availability.DurationOption, error) {
	var wrapper struct {
		Data []availability.DurationOption `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode availability options:\n%+v\n%s", resp.ToString(), err)
	}

	return wrapper.Data, nil
}

func (c *ReservationClient) DecodeQuote(resp *Response) (*pricing.Breakdown, error) {
	var wrapper struct {
		Data pricing.Breakdown `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode quote breakdown:\n%+v\n%s", resp.ToString(), err)
	}

	return &wrapper.Data, nil
}

func (c *ReservationClient) DecodeReservations(resp *Response) ([]*model.Reservation, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%+v\n%s", resp.ToString(), err)
	}

	var reservations []*model.Reservation
	if err := json.Unmarshal(wrapper.Data, &reservations); err != nil {
		return nil, nil, fmt.Errorf("could not decode reservation list:\n%+v\n%s", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return reservations, metadata, nil
}
