// Package redfishtest is a small simulated iLO for tests: enough of the
// Redfish surface for session login/logout, manager and system discovery,
// and attribute reads and partial updates. The BIOS service settings live
// only at the OEM path so the fallback retry gets exercised.
package redfishtest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/danmuck/iloctl/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	ManagerURI     = "/redfish/v1/Managers/1/"
	DateTimeURI    = ManagerURI + "DateTime/"
	EthernetURI    = ManagerURI + "EthernetInterfaces/1/"
	SystemURI      = "/redfish/v1/Systems/1/"
	BiosURI        = SystemURI + "bios/"
	BiosServiceURI = BiosURI + "oem/hpe/service/settings/"
)

// PatchRecord is one observed partial update.
type PatchRecord struct {
	URI        string
	Attributes map[string]any
}

// Simulator holds the mutable controller state behind the routes.
type Simulator struct {
	mu sync.Mutex

	Username string
	Password string

	// StaticToken, when set, is accepted without a login, mirroring a
	// caller-supplied auth token.
	StaticToken string

	DateTime    map[string]any
	Ethernet    map[string]any
	BIOSService map[string]any

	sessions map[string]bool
	nextID   int
	patches  []PatchRecord
}

func New() *Simulator {
	return &Simulator{
		Username: "Admin",
		Password: "Testpass123",
		DateTime: map[string]any{
			"TimeZone":   "UTC",
			"NTPServers": "pool.ntp.org",
		},
		Ethernet: map[string]any{
			"DNSServer":        "8.8.8.8",
			"DomainName":       "example.org",
			"WINSRegistration": "Enabled",
		},
		BIOSService: map[string]any{
			"ProcMonitorMwait":          "Enabled",
			"MemPreFailureNotification": "Disabled",
			"PowerOnDelay":              30,
		},
		sessions: map[string]bool{},
	}
}

// Patches returns a copy of every partial update seen so far.
func (s *Simulator) Patches() []PatchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PatchRecord, len(s.patches))
	copy(out, s.patches)
	return out
}

// SessionCount reports live sessions, for logout assertions.
func (s *Simulator) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Start serves the simulator over TLS with a self-signed certificate,
// matching how a real controller presents itself.
func (s *Simulator) Start() *httptest.Server {
	return httptest.NewTLSServer(s.Router())
}

func (s *Simulator) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))

	r.POST("/redfish/v1/SessionService/Sessions/", s.handleLogin)
	r.DELETE("/redfish/v1/SessionService/Sessions/:id/", s.handleLogout)

	authed := r.Group("/", s.requireSession)
	authed.GET("/redfish/v1/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Managers": gin.H{"@odata.id": "/redfish/v1/Managers/"},
			"Systems":  gin.H{"@odata.id": "/redfish/v1/Systems/"},
		})
	})
	authed.GET("/redfish/v1/Managers/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Members": []gin.H{{"@odata.id": ManagerURI}},
		})
	})
	authed.GET(ManagerURI, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Id": "1", "ManagerType": "BMC"})
	})
	authed.GET(SystemURI, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Id":   "1",
			"Bios": gin.H{"@odata.id": BiosURI},
		})
	})

	s.attributeResource(authed, DateTimeURI, &s.DateTime)
	s.attributeResource(authed, EthernetURI, &s.Ethernet)
	s.attributeResource(authed, BiosServiceURI, &s.BIOSService)

	return r
}

func (s *Simulator) attributeResource(g *gin.RouterGroup, uri string, attrs *map[string]any) {
	g.GET(uri, func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"Attributes": *attrs})
	})
	g.PATCH(uri, func(c *gin.Context) {
		var body struct {
			Attributes map[string]any `json:"Attributes"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for name, value := range body.Attributes {
			(*attrs)[name] = value
		}
		s.patches = append(s.patches, PatchRecord{URI: uri, Attributes: body.Attributes})
		c.JSON(http.StatusOK, gin.H{"Attributes": *attrs})
	})
}

func (s *Simulator) handleLogin(c *gin.Context) {
	var creds struct {
		UserName string `json:"UserName"`
		Password string `json:"Password"`
	}
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if creds.UserName != s.Username || creds.Password != s.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	s.nextID++
	token := fmt.Sprintf("token-%d", s.nextID)
	s.sessions[token] = true
	c.Header("X-Auth-Token", token)
	c.Header("Location", fmt.Sprintf("/redfish/v1/SessionService/Sessions/%d/", s.nextID))
	c.JSON(http.StatusCreated, gin.H{"Id": fmt.Sprintf("%d", s.nextID)})
}

func (s *Simulator) handleLogout(c *gin.Context) {
	token := c.GetHeader("X-Auth-Token")
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sessions[token] {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	delete(s.sessions, token)
	c.JSON(http.StatusOK, gin.H{})
}

func (s *Simulator) requireSession(c *gin.Context) {
	token := c.GetHeader("X-Auth-Token")
	s.mu.Lock()
	ok := s.sessions[token] || (s.StaticToken != "" && token == s.StaticToken)
	s.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Next()
}
