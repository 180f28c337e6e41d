package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/ridelens/ridelens/pkg/concurrent"
)

// User. one websocket client streaming dashcam telemetry for live analysis.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*liveAnalyzeRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &liveAnalyzeRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Analyze. read one telemetry frame batch from the client and answer with the
// current profile, maneuvers and, when the client annotated a marker, the
// approach-point ladder.
func (u *User) Analyze() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	validate := validator.New()

	if err := validate.Struct(req); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		errResp := envelope{"error": map[string]string{
			"code":    http.StatusText(http.StatusBadRequest),
			"message": fmt.Sprintf("validation error: %v", vvString),
		}}
		return u.write(errResp)
	}

	points := ToDataPoints(req.Points)

	profile, err := u.hub.analyticsService.SpeedProfile(points, req.FrameRate)
	if err != nil {
		return u.writeError(err)
	}

	report, err := u.hub.analyticsService.Maneuvers(points, req.FrameRate)
	if err != nil {
		return u.writeError(err)
	}

	resp := liveAnalyzeResponse{
		Profile:   NewSpeedProfileResponse(profile),
		Maneuvers: NewManeuverReportResponse(report),
	}

	if req.Marker != nil {
		approaches, err := u.hub.analyticsService.ApproachPoints(points,
			req.Marker.ToDataMarker(), nil, req.FrameRate)
		if err != nil {
			return u.writeError(err)
		}
		resp.Approaches = NewApproachPointsResponse(approaches)
	}

	return u.write(envelope{"data": resp})
}

func (u *User) writeError(err error) error {
	return u.write(envelope{"error": map[string]string{
		"code":    http.StatusText(http.StatusBadRequest),
		"message": err.Error(),
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu               sync.RWMutex
	seq              uint
	us               []*User
	ns               map[uint]*User
	analyticsService AnalyticsService

	pool *concurrent.GoroutinePool
}

func NewHub(pool *concurrent.GoroutinePool, analyticsService AnalyticsService) *Hub {
	hub := &Hub{
		pool:             pool,
		ns:               make(map[uint]*User),
		us:               make([]*User, 0),
		analyticsService: analyticsService,
	}

	return hub
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, oki := h.ns[user.id]; !oki {
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}
