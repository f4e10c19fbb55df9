// internal/dashboard/server.go
package dashboard

import (
	"embed"
	"encoding/gob"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/avpetrescu/catalog-admin/internal/config"
	"github.com/avpetrescu/catalog-admin/internal/middleware"
	"github.com/avpetrescu/catalog-admin/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

const stateKey = "state"

// sessionState is the gob-encoded subset of State kept in the session
// cookie. Image bytes never go in here; a failed submit keeps the text
// fields and the file must be chosen again (browsers do not repopulate
// file inputs either).
type sessionState struct {
	Phase          string
	UserID         uint
	Token          string
	FormName       string
	FormDesc       string
	FormPrice      string
	MessageText    string
	MessageKind    string
	MessageShownAt int64
}

func init() {
	gob.Register(sessionState{})
}

type Server struct {
	cfg    config.DashboardConfig
	client *Client
	engine *gin.Engine
}

func NewServer(cfg config.DashboardConfig) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.SetHTMLTemplate(tmpl)

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	engine.Use(sessions.Sessions("catalog_dashboard", store))

	s := &Server{
		cfg:    cfg,
		client: NewClient(cfg.APIBaseURL),
		engine: engine,
	}

	engine.GET("/", s.showDashboard)
	engine.POST("/login", s.handleLogin)
	engine.POST("/logout", s.handleLogout)
	engine.POST("/products", s.handleAddProduct)

	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

type pageData struct {
	State          State
	Products       []models.Product
	ListError      string
	RefreshSeconds int
}

func (s *Server) showDashboard(c *gin.Context) {
	sess := sessions.Default(c)
	st := loadState(sess)

	// The message timer: once a transient message has been on screen
	// for the TTL, the next render fires the clear event. Pages showing
	// a message carry a meta refresh so that render happens unprompted.
	ttl := time.Duration(s.cfg.MessageTTL) * time.Second
	if st.Message.Text != "" && time.Since(st.Message.ShownAt) >= ttl {
		st = Reduce(c.Request.Context(), st, MessageTimerFired{}, s.client, time.Now())
		s.saveState(c, sess, st)
	}

	data := pageData{
		State:          st,
		RefreshSeconds: s.cfg.MessageTTL,
	}

	if st.Phase == PhaseLoggedIn {
		products, err := s.client.ListProducts(c.Request.Context())
		if err != nil {
			data.ListError = "Error loading products: " + err.Error()
		} else {
			data.Products = products
		}
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}

func (s *Server) handleLogin(c *gin.Context) {
	sess := sessions.Default(c)
	st := loadState(sess)

	st = Reduce(c.Request.Context(), st, LoginClicked{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
	}, s.client, time.Now())

	s.saveState(c, sess, st)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleLogout(c *gin.Context) {
	sess := sessions.Default(c)
	st := loadState(sess)

	st = Reduce(c.Request.Context(), st, LogoutClicked{}, s.client, time.Now())

	s.saveState(c, sess, st)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleAddProduct(c *gin.Context) {
	sess := sessions.Default(c)
	st := loadState(sess)

	form := ProductForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		form.ImageFilename = fileHeader.Filename
		if file, err := fileHeader.Open(); err == nil {
			if data, err := io.ReadAll(file); err == nil {
				form.ImageData = data
			}
			file.Close()
		}
	}

	st = Reduce(c.Request.Context(), st, AddProductClicked{Form: form}, s.client, time.Now())

	s.saveState(c, sess, st)
	c.Redirect(http.StatusSeeOther, "/")
}

func loadState(sess sessions.Session) State {
	raw := sess.Get(stateKey)
	ss, ok := raw.(sessionState)
	if !ok {
		return NewState()
	}

	st := State{
		Phase:  Phase(ss.Phase),
		UserID: ss.UserID,
		Token:  ss.Token,
		Form: ProductForm{
			Name:        ss.FormName,
			Description: ss.FormDesc,
			Price:       ss.FormPrice,
		},
	}
	if ss.MessageText != "" {
		st.Message = Message{
			Text:    ss.MessageText,
			Kind:    MessageKind(ss.MessageKind),
			ShownAt: time.Unix(ss.MessageShownAt, 0),
		}
	}
	if st.Phase != PhaseLoggedIn {
		st.Phase = PhaseLoggedOut
	}
	return st
}

func (s *Server) saveState(c *gin.Context, sess sessions.Session, st State) {
	sess.Set(stateKey, sessionState{
		Phase:          string(st.Phase),
		UserID:         st.UserID,
		Token:          st.Token,
		FormName:       st.Form.Name,
		FormDesc:       st.Form.Description,
		FormPrice:      st.Form.Price,
		MessageText:    st.Message.Text,
		MessageKind:    string(st.Message.Kind),
		MessageShownAt: st.Message.ShownAt.Unix(),
	})
	if err := sess.Save(); err != nil {
		logrus.WithError(err).Error("Failed to save dashboard session")
	}
}
