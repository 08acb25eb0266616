// Command sweetctl is a CLI client for the Sweet Shop API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Maneesh0032/Sweets-Shop/internal/model"
)

// ---- config/token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "sweetshop")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sweetshop")
}

func tokenPath() string { return filepath.Join(cfgDir(), "token.json") }

func saveToken(tok string, exp time.Time) error {
	_ = os.MkdirAll(cfgDir(), 0o700)
	f, err := os.Create(tokenPath())
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: tok, ExpiresAt: exp})
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", errors.New("no valid token (login required)")
	}
	return tf.AccessToken, nil
}

// ---- utils ----

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

func authedClient(addr string) *apiClient {
	token, err := loadToken()
	if err != nil {
		fail(err)
	}
	return newClient(addr, token)
}

func usage() {
	fmt.Fprintf(os.Stderr, `sweetctl
Usage:
  sweetctl -addr URL <cmd> [args]

Commands:
  version
  health
  register   -email <email> -password <password>
  login      -email <email> -password <password>    (saves token)
  list       [-name s] [-category s] [-min-price n] [-max-price n]   (filters locally)
  search     [-name s] [-category s] [-min-price n] [-max-price n]   (filters on server)
  get        -id <id>
  add        -name s -category s -price n -quantity n
  edit       -id <id> -name s -category s -price n -quantity n
  rm         -id <id>
  purchase   -id <id>
  restock    -id <id> -quantity n
`)
	os.Exit(2)
}

func filterFlags(fs *flag.FlagSet) (name, category *string, minP, maxP *float64) {
	name = fs.String("name", "", "name substring")
	category = fs.String("category", "", "exact category")
	minP = fs.Float64("min-price", -1, "minimum price (inclusive)")
	maxP = fs.Float64("max-price", -1, "maximum price (inclusive)")
	return
}

// searchQuery encodes the non-empty filter flags as a query string, keeping
// the -1 sentinel convention of filterFlags. Values pass through url.Values
// so spaces and metacharacters in names survive the trip.
func searchQuery(name, category string, minP, maxP float64) string {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if category != "" {
		q.Set("category", category)
	}
	if minP >= 0 {
		q.Set("minPrice", strconv.FormatFloat(minP, 'g', -1, 64))
	}
	if maxP >= 0 {
		q.Set("maxPrice", strconv.FormatFloat(maxP, 'g', -1, 64))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func toFilters(name, category string, minP, maxP float64) model.SearchFilters {
	f := model.SearchFilters{Name: name, Category: category}
	if minP >= 0 {
		f.MinPrice = &minP
	}
	if maxP >= 0 {
		f.MaxPrice = &maxP
	}
	return f
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands against the REST API.
func main() {
	// global flags
	addr := flag.String("addr", "http://localhost:5000", "server base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {

	case "version":
		fmt.Printf("sweetctl %s (%s)\n", version, buildDate)

	case "health":
		var out map[string]string
		if err := newClient(*addr, "").do(ctx, "GET", "/api/health", nil, &out); err != nil {
			fail(err)
		}
		printJSON(out)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "need -email and -password")
			os.Exit(1)
		}

		var out map[string]any
		err := newClient(*addr, "").do(ctx, "POST", "/api/auth/register", map[string]string{
			"email":           *email,
			"password":        *password,
			"confirmPassword": *password,
		}, &out)
		if err != nil {
			fail(err)
		}
		printJSON(out)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "need -email and -password")
			os.Exit(1)
		}

		var out struct {
			Token string `json:"token"`
		}
		err := newClient(*addr, "").do(ctx, "POST", "/api/auth/login", map[string]string{
			"email":    *email,
			"password": *password,
		}, &out)
		if err != nil {
			fail(err)
		}

		// parse exp from JWT so the stored token self-expires
		var claims jwt.RegisteredClaims
		_, _ = jwt.ParseWithClaims(out.Token, &claims, func(*jwt.Token) (any, error) { return nil, nil },
			jwt.WithoutClaimsValidation(),
		)
		exp := time.Now().Add(24 * time.Hour)
		if claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}
		if err := saveToken(out.Token, exp); err != nil {
			fail(err)
		}
		fmt.Println("ok")

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		name, category, minP, maxP := filterFlags(fs)
		_ = fs.Parse(flag.Args()[1:])

		var sweets []model.Sweet
		if err := authedClient(*addr).do(ctx, "GET", "/api/sweets", nil, &sweets); err != nil {
			fail(err)
		}
		printJSON(localFilter(sweets, toFilters(*name, *category, *minP, *maxP)))

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		name, category, minP, maxP := filterFlags(fs)
		_ = fs.Parse(flag.Args()[1:])

		var sweets []model.Sweet
		path := "/api/sweets/search" + searchQuery(*name, *category, *minP, *maxP)
		if err := authedClient(*addr).do(ctx, "GET", path, nil, &sweets); err != nil {
			fail(err)
		}
		printJSON(sweets)

	case "get":
		fs := flag.NewFlagSet("get", flag.ExitOnError)
		id := fs.Int64("id", 0, "sweet id")
		_ = fs.Parse(flag.Args()[1:])

		var sweet model.Sweet
		if err := authedClient(*addr).do(ctx, "GET", fmt.Sprintf("/api/sweets/%d", *id), nil, &sweet); err != nil {
			fail(err)
		}
		printJSON(sweet)

	case "add", "edit":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.Int64("id", 0, "sweet id (edit only)")
		name := fs.String("name", "", "name")
		category := fs.String("category", "", "category")
		price := fs.Float64("price", -1, "price")
		quantity := fs.Int64("quantity", -1, "quantity")
		_ = fs.Parse(flag.Args()[1:])
		if *name == "" || *category == "" || *price < 0 || *quantity < 0 {
			fmt.Fprintln(os.Stderr, "need -name, -category, -price and -quantity")
			os.Exit(1)
		}

		body := map[string]any{
			"name":     *name,
			"category": *category,
			"price":    *price,
			"quantity": *quantity,
		}
		var sweet model.Sweet
		var err error
		if cmd == "add" {
			err = authedClient(*addr).do(ctx, "POST", "/api/sweets", body, &sweet)
		} else {
			err = authedClient(*addr).do(ctx, "PUT", fmt.Sprintf("/api/sweets/%d", *id), body, &sweet)
		}
		if err != nil {
			fail(err)
		}
		printJSON(sweet)

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "sweet id")
		_ = fs.Parse(flag.Args()[1:])

		var out map[string]any
		if err := authedClient(*addr).do(ctx, "DELETE", fmt.Sprintf("/api/sweets/%d", *id), nil, &out); err != nil {
			fail(err)
		}
		printJSON(out)

	case "purchase":
		fs := flag.NewFlagSet("purchase", flag.ExitOnError)
		id := fs.Int64("id", 0, "sweet id")
		_ = fs.Parse(flag.Args()[1:])

		var out map[string]any
		if err := authedClient(*addr).do(ctx, "POST", fmt.Sprintf("/api/sweets/%d/purchase", *id), nil, &out); err != nil {
			fail(err)
		}
		printJSON(out)

	case "restock":
		fs := flag.NewFlagSet("restock", flag.ExitOnError)
		id := fs.Int64("id", 0, "sweet id")
		quantity := fs.Int64("quantity", 0, "amount to add")
		_ = fs.Parse(flag.Args()[1:])

		var out map[string]any
		body := map[string]int64{"quantity": *quantity}
		if err := authedClient(*addr).do(ctx, "POST", fmt.Sprintf("/api/sweets/%d/restock", *id), body, &out); err != nil {
			fail(err)
		}
		printJSON(out)

	default:
		usage()
	}
}
