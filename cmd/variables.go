package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "List, evaluate and edit variables",
	Long:  "List, evaluate and edit variables. Use --game-days to provide the game clock reading",
}

var variablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the variables with their current value",
	Long:  "List the variables with their current value",
	RunE:  runVariablesList,
}

var variablesEvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a variable, optionally with other parameters",
	Long:  "Evaluate a variable, optionally with other parameters",
	RunE:  runVariablesEval,
}

var variablesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user variable based on a built-in one",
	Long:  "Add a user variable based on a built-in one",
	RunE:  runVariablesAdd,
}

var variablesRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a user variable",
	Long:  "Remove a user variable",
	RunE:  runVariablesRemove,
}

type variablesArgs struct {
	id       int
	removeID int
	source   int
	name     string
	params   string
}

var vArgs variablesArgs

func init() {
	variablesEvalCmd.Flags().IntVar(&vArgs.id, "id", 1, "variable id")
	variablesEvalCmd.Flags().StringVarP(&vArgs.params, "params", "p", "", "parameters to use instead of the stored ones")
	variablesAddCmd.Flags().IntVar(&vArgs.source, "source", 1, "id of the built-in variable to derive from")
	variablesAddCmd.Flags().StringVarP(&vArgs.name, "name", "n", "", "variable name")
	variablesAddCmd.Flags().StringVarP(&vArgs.params, "params", "p", "", "parameters")
	variablesRemoveCmd.Flags().IntVar(&vArgs.removeID, "id", 0, "variable id")

	variablesCmd.AddCommand(variablesListCmd)
	variablesCmd.AddCommand(variablesEvalCmd)
	variablesCmd.AddCommand(variablesAddCmd)
	variablesCmd.AddCommand(variablesRemoveCmd)
	RootCmd.AddCommand(variablesCmd)
}

func runVariablesList(cmd *cobra.Command, args []string) error {
	for _, v := range session.Variables.List() {
		fmt.Printf("%3d  %-16s %-28q %s\n", v.ID, v.Name, v.Params, session.Variables.Evaluate(v, v.Params))
	}
	return nil
}

func runVariablesEval(cmd *cobra.Command, args []string) error {
	v := session.Variables.Get(vArgs.id)
	if v == nil {
		return fmt.Errorf("unknown variable %d", vArgs.id)
	}
	params := v.Params
	if cmd.Flags().Changed("params") {
		params = vArgs.params
	}
	fmt.Println(session.Variables.Evaluate(v, params))
	return nil
}

func runVariablesAdd(cmd *cobra.Command, args []string) error {
	if vArgs.name == "" {
		return fmt.Errorf("name is required")
	}
	v, err := session.Variables.Add(vArgs.source, vArgs.name, vArgs.params)
	if err != nil {
		return fmt.Errorf("failed to add variable: %w", err)
	}
	if err := check(session.SaveVariables()); err != nil {
		return err
	}
	fmt.Printf("added variable %d\n", v.ID)
	return nil
}

func runVariablesRemove(cmd *cobra.Command, args []string) error {
	if err := session.Variables.Remove(vArgs.removeID); err != nil {
		return fmt.Errorf("failed to remove variable: %w", err)
	}
	return check(session.SaveVariables())
}
