package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/relove-market/storefront/internal/log"
	"github.com/relove-market/storefront/pkg/request"
)

func newAccountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Register, log in and manage the profile",
	}
	accountCmd.AddCommand(
		newLoginCommand(),
		newRegisterCommand(),
		newProfileCommand(),
		newUpgradeCommand(),
		newAddressCommand(),
		newPhotoCommand(),
	)
	return accountCmd
}

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and print the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			password, err := readPassword()
			if err != nil {
				return err
			}
			login, err := application.client.Login(c, request.Login{
				Email:    args[0],
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("failed logging in with error=%w", err)
			}
			fmt.Println("logged in, export the token for the other commands:")
			fmt.Printf("  export STOREFRONT_TOKEN=%s\n", login.Token)
			fmt.Printf("  export STOREFRONT_EMAIL=%s\n", login.Email)
			return nil
		},
	}
}

func newRegisterCommand() *cobra.Command {
	var firstName, lastName string
	registerCmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			password, err := readPassword()
			if err != nil {
				return err
			}
			err = application.client.Register(c, request.Register{
				FirstName: firstName,
				LastName:  lastName,
				Email:     args[0],
				Password:  password,
			})
			if err != nil {
				return fmt.Errorf("failed registering with error=%w", err)
			}
			fmt.Println("account created, log in with 'storefront account login'")
			return nil
		},
	}
	registerCmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	_ = registerCmd.MarkFlagRequired("first-name")
	_ = registerCmd.MarkFlagRequired("last-name")
	return registerCmd
}

func newProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the profile, wallet balance and addresses",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			profile, err := application.client.Me(c)
			if err != nil {
				return fmt.Errorf("failed fetching profile with error=%w", err)
			}
			fmt.Printf("%s %s <%s>\n", profile.FirstName, profile.LastName, profile.Email)
			for _, role := range profile.Roles {
				fmt.Printf("  role: %s\n", role.Name)
			}
			fmt.Printf("  wallet balance: %s\n", profile.Balance.StringFixed(2))
			for _, address := range profile.Addresses {
				marker := " "
				if address.IsDefault {
					marker = "*"
				}
				fmt.Printf("  %s address %d: %s, %s %s, %s\n",
					marker, address.ID, address.StreetAddress,
					address.City, address.PostalCode, address.Country)
			}
			for _, photo := range profile.Photos {
				fmt.Printf("    photo %d: %s\n", photo.ID, photo.Url)
			}
			if expiry, ok := application.session.ExpiresAt(); ok {
				fmt.Printf("  session expires %s\n", expiry.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newUpgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade-to-seller",
		Short: "Upgrade the account so it can list products",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			profile, err := application.client.Me(c)
			if err != nil {
				return fmt.Errorf("failed fetching profile with error=%w", err)
			}
			err = application.client.UpgradeToSeller(c, profile.ID)
			if err != nil {
				return fmt.Errorf("failed upgrading to seller with error=%w", err)
			}
			fmt.Println("you can now sell, see 'storefront sell'")
			return nil
		},
	}
}

func newAddressCommand() *cobra.Command {
	addressCmd := &cobra.Command{
		Use:   "address",
		Short: "Manage saved addresses",
	}

	var param request.Address
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new address",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			profile, err := application.client.Me(c)
			if err != nil {
				return fmt.Errorf("failed fetching profile with error=%w", err)
			}
			address, err := application.client.AddAddress(c, profile.ID, param)
			if err != nil {
				return fmt.Errorf("failed saving address with error=%w", err)
			}
			zerolog.Ctx(c).Info().
				Str(log.KEY_TAG, "address add").
				Int64("addressId", address.ID).
				Msg("saved address")
			fmt.Printf("saved address %d\n", address.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&param.FullName, "name", "", "receiver full name")
	addCmd.Flags().StringVar(&param.PhoneNumber, "phone", "", "receiver phone")
	addCmd.Flags().StringVar(&param.StreetAddress, "street", "", "street address")
	addCmd.Flags().StringVar(&param.City, "city", "", "city")
	addCmd.Flags().StringVar(&param.State, "state", "", "state")
	addCmd.Flags().StringVar(&param.PostalCode, "postal-code", "", "postal code")
	addCmd.Flags().StringVar(&param.Country, "country", "", "country")
	addCmd.Flags().BoolVar(&param.IsDefault, "default", false, "use as default address")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("phone")
	_ = addCmd.MarkFlagRequired("street")
	_ = addCmd.MarkFlagRequired("city")

	rmCmd := &cobra.Command{
		Use:   "rm <addressId>",
		Short: "Delete a saved address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			addressId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("addressId must be a number")
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			profile, err := application.client.Me(c)
			if err != nil {
				return fmt.Errorf("failed fetching profile with error=%w", err)
			}
			err = application.client.DeleteAddress(c, profile.ID, addressId)
			if err != nil {
				return fmt.Errorf("failed deleting address with error=%w", err)
			}
			fmt.Printf("deleted address %d\n", addressId)
			return nil
		},
	}

	addressCmd.AddCommand(addCmd, rmCmd)
	return addressCmd
}

func newPhotoCommand() *cobra.Command {
	photoCmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage profile and try-on photos",
	}

	uploadCmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a photo to your gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			profile, err := application.client.Me(c)
			if err != nil {
				return fmt.Errorf("failed fetching profile with error=%w", err)
			}
			photo, err := application.client.UploadPhoto(c, profile.ID, args[0])
			if err != nil {
				return fmt.Errorf("failed uploading photo with error=%w", err)
			}
			fmt.Printf("uploaded photo %d: %s\n", photo.ID, photo.Url)
			return nil
		},
	}

	selectCmd := &cobra.Command{
		Use:   "select <photoId>",
		Short: "Use a gallery photo as the profile picture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			photoId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("photoId must be a number")
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			profile, err := application.client.Me(c)
			if err != nil {
				return fmt.Errorf("failed fetching profile with error=%w", err)
			}
			err = application.client.SelectProfilePicture(c, profile.ID, photoId)
			if err != nil {
				return fmt.Errorf("failed selecting profile picture with error=%w", err)
			}
			fmt.Printf("photo %d is now the profile picture\n", photoId)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <photoId>",
		Short: "Delete a gallery photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cmd.Context()
			photoId, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("photoId must be a number")
			}
			application, err := newApp(c)
			if err != nil {
				return err
			}
			defer application.shutdown(c)

			profile, err := application.client.Me(c)
			if err != nil {
				return fmt.Errorf("failed fetching profile with error=%w", err)
			}
			err = application.client.DeletePhoto(c, profile.ID, photoId)
			if err != nil {
				return fmt.Errorf("failed deleting photo with error=%w", err)
			}
			fmt.Printf("deleted photo %d\n", photoId)
			return nil
		},
	}

	photoCmd.AddCommand(uploadCmd, selectCmd, rmCmd)
	return photoCmd
}

func readPassword() (string, error) {
	fmt.Print("password: ")
	reader := bufio.NewReader(os.Stdin)
	raw, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed reading password with error=%w", err)
	}
	return strings.TrimRight(raw, "\r\n"), nil
}
