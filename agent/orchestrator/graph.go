package orchestrator

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	nodex "github.com/tanpawarit/ecom-support-agent/agent/nodes"
)

func (o *Orchestrator) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, nodex.GraphOutput], error) {
	graph := compose.NewGraph[nodex.GraphInput, nodex.GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_or_create_state",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LoadOrCreateState(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_or_create_state: %w", err)
	}

	if err := graph.AddLambdaNode("choose_route",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ChooseRoute(in, o.ledger)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node choose_route: %w", err)
	}

	if err := graph.AddLambdaNode("collect_contact",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.CollectContact(ctx, in, o.collector)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node collect_contact: %w", err)
	}

	if err := graph.AddLambdaNode("lookup_order",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LookupOrder(in, o.ledger)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node lookup_order: %w", err)
	}

	if err := graph.AddLambdaNode("generate",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.Generate(ctx, in, o.generator, o.systemPrompt)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node generate: %w", err)
	}

	if err := graph.AddLambdaNode("interpret_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.InterpretReply(in, o.ledger)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node interpret_reply: %w", err)
	}

	if err := graph.AddLambdaNode("save_state",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.SaveState(ctx, in, o.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_state: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_reply",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (nodex.GraphOutput, error) {
			return nodex.FinalizeReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_reply: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_or_create_state"},
		{"load_or_create_state", "choose_route"},
		{"collect_contact", "save_state"},
		{"lookup_order", "save_state"},
		{"generate", "interpret_reply"},
		{"interpret_reply", "save_state"},
		{"save_state", "finalize_reply"},
		{"finalize_reply", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	routeBranch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			switch in.Route {
			case nodex.RouteCollectContact:
				return "collect_contact", nil
			case nodex.RouteLookupOrder:
				return "lookup_order", nil
			default:
				return "generate", nil
			}
		},
		map[string]bool{
			"collect_contact": true,
			"lookup_order":    true,
			"generate":        true,
		},
	)
	if err := graph.AddBranch("choose_route", routeBranch); err != nil {
		return nil, fmt.Errorf("add route branch: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.handle_message"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}
