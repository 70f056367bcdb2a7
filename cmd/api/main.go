package main

// @title Todo APIs
// @version 1.0
// @description Todo list JSON API and htmx views.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /
// @schemes http
import (
	_ "todo-htmx/docs"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.Fatalln(err)
	}
}
