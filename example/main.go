package main

import (
	"github.com/restatedev/sdk-go/server"

	"github.com/rs/zerolog/log"
)

func main() {
	r := server.NewRestate().
		Bind(health).
		Bind(bigCounter).
		Bind(checkoutService).
		Bind(shipment).
		Bind(slowEcho).
		Bind(timeoutCaller)

	log.Fatal().Err(r.Listen(":9080")).Msg("endpoint stopped")
}
