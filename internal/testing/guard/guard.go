package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("CFOHUB_TEST_MODE") == "" {
			_ = os.Setenv("CFOHUB_TEST_MODE", "1")
		}
	})
}
