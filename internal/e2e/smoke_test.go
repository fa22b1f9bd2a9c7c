package e2e

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			_, _ = fmt.Fprint(w, `{"token":"smoke-token","username":"admin","role":"ROLE_ADMIN","userId":1}`)
		case "/api/doctors/public":
			assert.Equal(t, "Bearer smoke-token", r.Header.Get("Authorization"))
			_, _ = fmt.Fprint(w, `[{"id":1,"ad":"Ayşe","soyad":"Yılmaz","email":"ayse@klinik.test","uzmanlik":"Ortodonti"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	home := t.TempDir()
	binaryPath := buildBinary(t)
	env := []string{
		"HOME=" + home,
		"KLINIK_API_URL=" + server.URL + "/api",
		"KLINIK_SESSION_BACKEND=file",
	}

	_, stderr, err := runKlinik(t, binaryPath, env, "login", "--username", "admin", "--password", "secret", "--json")
	require.NoError(t, err, "stderr: %s", stderr)

	stdout, stderr, err := runKlinik(t, binaryPath, env, "doctors", "list")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Dr. Ayşe Yılmaz (#1)")

	_, stderr, err = runKlinik(t, binaryPath, env, "logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = runKlinik(t, binaryPath, env, "whoami")
	require.Error(t, err)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "klinik-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/klinik")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build klinik binary: %s", string(output))
	return binaryPath
}

func runKlinik(t *testing.T, binaryPath string, env []string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), env...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
