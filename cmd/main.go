package main

import (
	"github.com/ecomlabs/checkout/internal/app"
	"github.com/ecomlabs/checkout/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
