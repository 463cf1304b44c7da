package main

import (
	"context"
	"log"
	"time"

	"soulink-backend/infrastructure/config"
	"soulink-backend/infrastructure/di"
	"soulink-backend/interfaces/http/rest"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
)

// Lambda lifecycle state, initialized once per cold start.
var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.Container
)

// init runs during cold start
func init() {
	start := time.Now()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	router := rest.NewRouter(container.NotesService, cfg, container.Logger)
	chiLambda = chiadapter.NewV2(router.Setup())

	log.Printf("Lambda cold start completed in %v", time.Since(start))
}

// Handler proxies API Gateway requests into the chi router. The gateway's
// JWT authorizer has already validated the caller's token; the sub claim is
// lifted into trusted headers that the authentication middleware consumes.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}

	// Never trust these headers from the outside.
	delete(req.Headers, "X-API-Gateway-Authorized")
	delete(req.Headers, "X-User-ID")
	delete(req.Headers, "X-User-Email")

	if auth := req.RequestContext.Authorizer; auth != nil && auth.JWT != nil {
		if sub := auth.JWT.Claims["sub"]; sub != "" {
			req.Headers["X-API-Gateway-Authorized"] = "true"
			req.Headers["X-User-ID"] = sub
			if email := auth.JWT.Claims["email"]; email != "" {
				req.Headers["X-User-Email"] = email
			}
		}
	}

	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
