package config

import "os"

// Environment selects how configuration is loaded
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

// GetEnvironment resolves the runtime environment. CI pipelines set CI=true
// and win over ENV; anything unrecognized falls back to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch Environment(os.Getenv("ENV")) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

func IsDevelopment() bool { return GetEnvironment() == Development }
func IsTest() bool        { return GetEnvironment() == Test }
func IsProduction() bool  { return GetEnvironment() == Production }
