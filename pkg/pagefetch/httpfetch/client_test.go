package httpfetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sitecheck/pkg/domain"
	"sitecheck/pkg/pagefetch"
	"sitecheck/pkg/pagefetch/httpfetch"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func serve(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return srv
}

const shopHTML = `<!doctype html>
<html><head>
  <title>  Cheap Watches   </title>
  <meta name="description" content="  Best prices on watches ">
  <style>body { color: red }</style>
  <script>var tracking = "should not appear";</script>
</head>
<body>
  <h1>Welcome</h1>
  <noscript>Enable JavaScript</noscript>
  <p>Great
     deals	every day.</p>
  <script>alert("hidden")</script>
</body></html>`

func TestClient_Fetch_extractsContent(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, httpfetch.DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(shopHTML))
	})

	page, err := httpfetch.New(nil, httpfetch.Options{}).Fetch(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	require.NotNil(t, page.Title)
	require.Equal(t, "Cheap Watches", *page.Title)
	require.NotNil(t, page.Description)
	require.Equal(t, "Best prices on watches", *page.Description)
	require.Equal(t, "Welcome Great deals every day.", page.TextSample)
	require.Equal(t, srv.URL+"/", page.FinalURL)
	require.False(t, page.FetchedAt.IsZero())
}

func TestClient_Fetch_descriptionFallbacks(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title> </title>
			<meta name="description" content="   ">
			<meta property="og:description" content="From open graph">
			</head><body>x</body></html>`))
	})

	page, err := httpfetch.New(nil, httpfetch.Options{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Nil(t, page.Title, "blank title is absent")
	require.NotNil(t, page.Description)
	require.Equal(t, "From open graph", *page.Description)
}

func TestClient_Fetch_missingMetadata(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<p>only text</p>`))
	})

	page, err := httpfetch.New(nil, httpfetch.Options{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Nil(t, page.Title)
	require.Nil(t, page.Description)
	require.Equal(t, "only text", page.TextSample)
}

func TestClient_Fetch_capsTextSample(t *testing.T) {
	words := strings.Repeat("é ", pagefetch.MaxTextSample)
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<body>" + words + "</body>"))
	})

	page, err := httpfetch.New(nil, httpfetch.Options{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, []rune(page.TextSample), pagefetch.MaxTextSample)
}

func TestClient_Fetch_decodesCharset(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<title>Caf\xe9</title><body>Cr\xe8me br\xfbl\xe9e</body>"))
	})

	page, err := httpfetch.New(nil, httpfetch.Options{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Café", *page.Title)
	require.Equal(t, "Crème brûlée", page.TextSample)
}

func TestClient_Fetch_limitsBody(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<body>" + strings.Repeat("a", 100) + strings.Repeat("b", 100) + "</body>"))
	})

	page, err := httpfetch.New(nil, httpfetch.Options{MaxBodyBytes: 106}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("a", 100), page.TextSample)
}

func TestClient_Fetch_nonSuccessStatus(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := httpfetch.New(nil, httpfetch.Options{}).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, domain.ErrFetchFailed)

	var statusErr *pagefetch.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestClient_Fetch_followsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<title>New home</title>"))
	})
	srv := serve(t, mux.ServeHTTP)

	page, err := httpfetch.New(nil, httpfetch.Options{}).Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)
	require.Equal(t, "New home", *page.Title)
	require.Equal(t, srv.URL+"/new", page.FinalURL)
}

func TestClient_Fetch_redirectLoop(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
	})

	_, err := httpfetch.New(nil, httpfetch.Options{MaxRedirects: 3}).Fetch(context.Background(), srv.URL+"/")
	require.ErrorIs(t, err, domain.ErrFetchFailed)
	require.NotErrorIs(t, err, domain.ErrFetchTimeout)
}

func TestClient_Fetch_timeout(t *testing.T) {
	srv := serve(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	start := time.Now()
	_, err := httpfetch.New(nil, httpfetch.Options{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, domain.ErrFetchTimeout)
	require.Less(t, time.Since(start), time.Second)
}

func TestClient_Fetch_callerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := httpfetch.New(&http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		cancel()
		<-r.Context().Done()

		return nil, r.Context().Err()
	})}, httpfetch.Options{})

	_, err := c.Fetch(ctx, "https://example.com/")
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, domain.ErrFetchTimeout)
	require.NotErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClient_Fetch_transportError(t *testing.T) {
	refused := errors.New("connection refused")
	c := httpfetch.New(&http.Client{Transport: rtFunc(func(*http.Request) (*http.Response, error) {
		return nil, refused
	})}, httpfetch.Options{})

	_, err := c.Fetch(context.Background(), "https://unreachable.example/")
	require.ErrorIs(t, err, domain.ErrFetchFailed)
	require.ErrorIs(t, err, refused)

	var statusErr *pagefetch.HTTPStatusError
	require.NotErrorAs(t, err, &statusErr)
}
