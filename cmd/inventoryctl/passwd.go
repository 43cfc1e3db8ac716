package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jhoicas/inventario-libros/internal/application/auth"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Cambia la contraseña de un usuario",
	Long:  `Reemplaza la contraseña sin pedir la actual. Pensado para cambiar la del administrador inicial.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPasswd,
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	cmd.Print("Nueva contraseña: ")
	pw, err := readPassword(cmd.InOrStdin())
	cmd.Println()
	if err != nil {
		return err
	}

	uc := auth.NewAuthUseCase(e.backend.Users, e.backend.Tx, nil, auth.SessionConfig{Secret: e.cfg.Session.Secret})
	if err := uc.SetPassword(ctx, args[0], pw); err != nil {
		return fmt.Errorf("cambiar contraseña de %s: %w", args[0], err)
	}
	cmd.Printf("contraseña de %s actualizada\n", args[0])
	return nil
}

// readPassword sin eco si la entrada es una terminal; si no, lee una línea.
func readPassword(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
