package grammar

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	apperrors "resumescore/internal/errors"
)

// builtinAllowlist holds technical vocabulary that spell checkers flag
// constantly on resumes. Entries are matched case-insensitively against
// the exact flagged span.
var builtinAllowlist = []string{
	// Languages
	"python", "javascript", "typescript", "java", "cpp", "csharp", "golang",
	"rust", "kotlin", "swift", "php", "ruby", "scala", "perl", "haskell",
	"elixir", "dart", "lua", "matlab", "clojure",

	// Frameworks and libraries
	"react", "angular", "vue", "django", "flask", "fastapi", "nodejs",
	"express", "spring", "springboot", "tensorflow", "pytorch", "keras",
	"pandas", "numpy", "scikit", "matplotlib", "seaborn", "jquery",
	"bootstrap", "tailwind", "nextjs", "nuxt", "svelte", "flutter",
	"streamlit", "langchain", "opencv",

	// Databases
	"mysql", "postgresql", "postgres", "mongodb", "redis", "elasticsearch",
	"cassandra", "dynamodb", "firestore", "sqlite", "mariadb", "neo4j",
	"supabase", "cockroachdb", "influxdb",

	// Cloud and infrastructure
	"aws", "azure", "gcp", "kubernetes", "docker", "jenkins", "gitlab",
	"github", "terraform", "ansible", "circleci", "heroku", "netlify",
	"vercel", "digitalocean", "cloudflare", "nginx",

	// Tools and protocols
	"git", "jira", "confluence", "vscode", "intellij", "pycharm", "postman",
	"swagger", "graphql", "restful", "api", "sdk", "cli", "oauth", "jwt",
	"ssl", "tls", "http", "https", "tcp", "udp", "dns", "jupyter", "kaggle",
	"databricks", "snowflake", "airflow", "mlflow", "kubeflow", "sagemaker",
	"openai", "anthropic", "grpc", "websocket", "cdn", "vpc", "ec2", "s3",
	"rds", "lambda", "iam", "cloudfront",

	// Methodologies and abbreviations
	"agile", "scrum", "kanban", "devops", "cicd", "microservices",
	"serverless", "frontend", "backend", "fullstack", "mlops", "gitops",
	"html", "css", "json", "xml", "yaml", "sql", "nosql", "orm", "mvc",
	"crud", "rest", "soap", "llm", "nlp", "etl", "hdfs", "spark", "kafka",
}

// Allowlist suppresses grammar findings whose flagged span is a known
// technical term. An optional file extends the built-in set and is
// reloaded when it changes on disk.
type Allowlist struct {
	mu      sync.RWMutex
	terms   map[string]struct{}
	path    string
	watcher *fsnotify.Watcher
	logger  *apperrors.Logger
	done    chan struct{}
}

// NewAllowlist builds the allowlist from the built-in terms plus the
// optional file at path. An empty path means built-in terms only.
func NewAllowlist(path string, logger *apperrors.Logger) (*Allowlist, error) {
	a := &Allowlist{
		path:   path,
		logger: logger,
		done:   make(chan struct{}),
	}
	if err := a.reload(); err != nil {
		return nil, err
	}
	if path != "" {
		if err := a.watch(); err != nil {
			// A missing watcher degrades hot reload, not filtering
			logger.Warn("Allowlist file watching disabled", "path", path, "error", err.Error())
		}
	}
	return a, nil
}

// Contains reports whether the flagged span matches an allowed term
func (a *Allowlist) Contains(span string) bool {
	term := strings.ToLower(strings.TrimSpace(span))
	if term == "" {
		return false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.terms[term]
	return ok
}

// Len returns the number of allowed terms
func (a *Allowlist) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.terms)
}

// reload rebuilds the term set from the built-in list and the file
func (a *Allowlist) reload() error {
	terms := make(map[string]struct{}, len(builtinAllowlist))
	for _, term := range builtinAllowlist {
		terms[term] = struct{}{}
	}

	if a.path != "" {
		file, err := os.Open(a.path)
		if err != nil {
			if os.IsNotExist(err) {
				a.logger.Warn("Allowlist file not found, using built-in terms", "path", a.path)
			} else {
				return apperrors.NewIOError(apperrors.ErrCodeFileNotReadable,
					"failed to read allowlist file", err).
					WithContext("path", a.path)
			}
		} else {
			defer file.Close()
			scanner := bufio.NewScanner(file)
			for scanner.Scan() {
				line := strings.ToLower(strings.TrimSpace(scanner.Text()))
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				terms[line] = struct{}{}
			}
			if err := scanner.Err(); err != nil {
				return apperrors.NewIOError(apperrors.ErrCodeFileNotReadable,
					"failed to read allowlist file", err).
					WithContext("path", a.path)
			}
		}
	}

	a.mu.Lock()
	a.terms = terms
	a.mu.Unlock()
	return nil
}

// watch reloads the allowlist when the file is rewritten. The parent
// directory is watched because editors replace files on save.
func (a *Allowlist) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(a.path)); err != nil {
		watcher.Close()
		return err
	}
	a.watcher = watcher

	go func() {
		target := filepath.Clean(a.path)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				if err := a.reload(); err != nil {
					a.logger.Warn("Allowlist reload failed", "path", a.path, "error", err.Error())
					continue
				}
				a.logger.Info("Allowlist reloaded", "path", a.path, "terms", a.Len())
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.logger.Warn("Allowlist watcher error", "error", err.Error())
			case <-a.done:
				return
			}
		}
	}()
	return nil
}

// Close stops the file watcher
func (a *Allowlist) Close() error {
	close(a.done)
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
